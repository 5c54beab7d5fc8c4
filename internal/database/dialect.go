// Package database provides the query facade over the hh vacancy database.
//
// FILE: dialect.go
// PURPOSE: Per-driver knowledge: the database/sql driver name, the bind
// parameter style, and how a DatabaseConfig becomes a connection string.
//
// Queries in this package are written with '?' placeholders and rebound
// for drivers that use numbered parameters.
package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/willfong/hh-vacancies/internal/config"
)

// PlaceholderStyle is how a driver spells bind parameters
type PlaceholderStyle int

const (
	// PlaceholderQuestion is '?' (MySQL, SQLite)
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar is '$1', '$2', ... (PostgreSQL)
	PlaceholderDollar
)

// Dialect describes one supported database
type Dialect struct {
	// Name as used in configuration (postgres, mysql, sqlite)
	Name string
	// DriverName as registered with database/sql
	DriverName  string
	Placeholder PlaceholderStyle
}

var dialects = map[string]Dialect{
	"postgres": {Name: "postgres", DriverName: "pgx", Placeholder: PlaceholderDollar},
	"mysql":    {Name: "mysql", DriverName: "mysql", Placeholder: PlaceholderQuestion},
	"sqlite":   {Name: "sqlite", DriverName: "sqlite", Placeholder: PlaceholderQuestion},
}

// DialectFor returns the dialect for a configured driver name.
// "postgresql" and "mariadb" are accepted as aliases.
func DialectFor(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "postgresql", "pgx":
		name = "postgres"
	case "mariadb":
		name = "mysql"
	case "sqlite3":
		name = "sqlite"
	}

	d, ok := dialects[name]
	if !ok {
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, name)
	}
	return d, nil
}

// Rebind rewrites '?' placeholders into the dialect's style.
// Question marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d.Placeholder == PlaceholderQuestion {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			sb.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// BuildDSN returns the connection string for cfg. An explicit DSN wins;
// otherwise one is assembled from host/port/user/password and the fixed
// database name.
func (d Dialect) BuildDSN(cfg config.DatabaseConfig) (string, error) {
	switch d.Name {
	case "postgres":
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.ResolvedPort())),
			Path:   "/" + config.DatabaseName,
		}
		if cfg.Password != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		} else {
			u.User = url.User(cfg.User)
		}
		if cfg.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
		}
		return u.String(), nil

	case "mysql":
		// parseTime is always on so DATE/DATETIME columns scan into time.Time
		if cfg.DSN != "" {
			return ensureParseTime(cfg.DSN), nil
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.ResolvedPort()))
		mc.DBName = config.DatabaseName
		mc.ParseTime = true
		return mc.FormatDSN(), nil

	case "sqlite":
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite database path is empty")
		}
		return cfg.Path, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, d.Name)
}

// MaskDSN hides the password in a connection string for display
func (d Dialect) MaskDSN(dsn string) string {
	switch d.Name {
	case "postgres":
		if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
			return u.Redacted()
		}
	case "mysql":
		if mc, err := mysql.ParseDSN(dsn); err == nil {
			if mc.Passwd != "" {
				mc.Passwd = "xxxxx"
			}
			return mc.FormatDSN()
		}
	case "sqlite":
		return dsn
	}
	return "<unparseable dsn>"
}

// ensureParseTime adds parseTime=true to MySQL DSN if not already present.
func ensureParseTime(dsn string) string {
	// Check if parseTime is already specified (case-insensitive)
	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "parsetime=") {
		return dsn
	}

	// Add parseTime=true to the query string
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}
