package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Config holds all configuration for the query tool
type Config struct {
	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Output formatting
	Output OutputConfig `mapstructure:"output"`

	// Timeout applied to each command's queries (0 = none)
	QueryTimeout time.Duration `mapstructure:"query_timeout"`

	// Logging
	Verbose bool `mapstructure:"verbose"`
}

// DatabaseConfig holds database connection settings.
// The database name is not configurable: it is always DatabaseName.
type DatabaseConfig struct {
	// Driver (postgres, mysql, sqlite)
	Driver string `mapstructure:"driver"`

	// Connection parameters
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`

	// Path is the database file for the sqlite driver
	Path string `mapstructure:"path"`

	// DSN overrides the connection string built from the fields above
	DSN string `mapstructure:"dsn"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// OutputConfig holds presentation settings
type OutputConfig struct {
	// Currency code used when rendering salaries
	Currency string `mapstructure:"currency"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DBDriver,
			Host:            DBHost,
			SSLMode:         DBSSLMode,
			Path:            DBSQLitePath,
			MaxOpenConns:    DBMaxOpenConns,
			MaxIdleConns:    DBMaxIdleConns,
			ConnMaxLifetime: DBConnMaxLifetime,
			ConnMaxIdleTime: DBConnMaxIdleTime,
		},
		Output: OutputConfig{
			Currency: Currency,
		},
		QueryTimeout: QueryTimeout,
		Verbose:      false,
	}
}

// Load reads configuration from viper into a Config struct.
// A [postgresql] section (database.ini layout) found in the config file
// fills in connection settings the database section, env and flags left unset.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet(IniSection) {
		if err := ApplySection(viper.GetStringMapString(IniSection)); err != nil {
			return nil, err
		}
	}

	// Unmarshal viper config into struct
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// sectionKeys maps database.ini keys to config keys. dbname is absent
// because the database name is fixed.
var sectionKeys = map[string]string{
	"host":     "database.host",
	"port":     "database.port",
	"user":     "database.user",
	"password": "database.password",
	"sslmode":  "database.sslmode",
	"driver":   "database.driver",
	"path":     "database.path",
}

// ApplySection registers connection parameters from a flat key/value
// mapping, as found in a database.ini section, as viper defaults. They rank
// below the config file's database section, HHQ_* variables and flags.
// Unknown keys are ignored.
func ApplySection(params map[string]string) error {
	for key, value := range params {
		configKey, ok := sectionKeys[strings.ToLower(key)]
		if !ok {
			continue
		}
		if configKey == "database.port" {
			port, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("[%s] invalid port %q: %w", IniSection, value, err)
			}
			viper.SetDefault(configKey, port)
			continue
		}
		viper.SetDefault(configKey, value)
	}
	return nil
}

// ReadIniFile applies the [postgresql] section of a database.ini file.
// viper has no ini decoder, so the file is parsed here.
func ReadIniFile(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	section, err := f.GetSection(IniSection)
	if err != nil {
		return fmt.Errorf("%s has no [%s] section", path, IniSection)
	}
	return ApplySection(section.KeysHash())
}

// BindEnv enables HHQ_* environment overrides. Keys without a flag are
// given defaults so that viper knows to look them up.
func BindEnv() {
	viper.SetDefault("database.sslmode", DBSSLMode)
	viper.SetDefault("database.max_open_conns", DBMaxOpenConns)
	viper.SetDefault("database.max_idle_conns", DBMaxIdleConns)
	viper.SetDefault("database.conn_max_lifetime", DBConnMaxLifetime)
	viper.SetDefault("database.conn_max_idle_time", DBConnMaxIdleTime)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// ResolvedPort returns the configured port or the driver's default
func (d DatabaseConfig) ResolvedPort() int {
	if d.Port > 0 {
		return d.Port
	}
	switch d.Driver {
	case "mysql", "mariadb":
		return MySQLPort
	default:
		return PostgresPort
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case "postgres", "postgresql", "pgx", "mysql", "mariadb":
		if c.Database.DSN == "" && c.Database.Host == "" {
			errs = append(errs, "database.host is required for "+c.Database.Driver)
		}
		if c.Database.DSN == "" && c.Database.User == "" {
			errs = append(errs, "database.user is required for "+c.Database.Driver)
		}
	case "sqlite", "sqlite3":
		if c.Database.DSN == "" && c.Database.Path == "" {
			errs = append(errs, "database.path is required for sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be one of postgres, mysql, sqlite (got %q)", c.Database.Driver))
	}

	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, "database.port must be between 0 and 65535")
	}

	// Validate database pool settings
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}

	if c.QueryTimeout < 0 {
		errs = append(errs, "query_timeout must be non-negative")
	}
	if c.Output.Currency == "" {
		errs = append(errs, "output.currency must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
