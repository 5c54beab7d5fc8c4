// Package config holds compile-time defaults for the hh vacancy query tool.
// Everything here can be overridden from a config file, the environment or flags.
package config

import "time"

// =============================================================================
// DATABASE DEFAULTS
// =============================================================================

const (
	// DatabaseName is the fixed name of the vacancy database.
	// The ingestion pipeline always writes to this database.
	DatabaseName = "hh_db"

	// DBDriver is the database driver to use (postgres, mysql, sqlite)
	DBDriver = "postgres"

	// DBHost is the default database host
	DBHost = "localhost"

	// DBSSLMode is the default PostgreSQL sslmode
	DBSSLMode = "disable"

	// DBSQLitePath is the database file used by the sqlite driver
	DBSQLitePath = "hh_db.sqlite"

	// DBMaxOpenConns is maximum open connections in the pool
	DBMaxOpenConns = 4

	// DBMaxIdleConns is maximum idle connections in the pool
	DBMaxIdleConns = 2

	// DBConnMaxLifetime is how long a connection can be reused
	DBConnMaxLifetime = 5 * time.Minute

	// DBConnMaxIdleTime is how long an idle connection is kept
	DBConnMaxIdleTime = 1 * time.Minute
)

// Default ports per driver
const (
	PostgresPort = 5432
	MySQLPort    = 3306
)

// =============================================================================
// COMMAND DEFAULTS
// =============================================================================

const (
	// ConnectTimeout bounds the initial ping at startup
	ConnectTimeout = 10 * time.Second

	// QueryTimeout bounds a single command's queries (0 = no timeout)
	QueryTimeout = 0

	// Currency is the display currency for salaries (hh.ru reports RUR)
	Currency = "RUR"

	// EnvPrefix is the prefix for environment overrides (HHQ_DATABASE_HOST, ...)
	EnvPrefix = "HHQ"

	// IniSection is the section read from a classic database.ini file
	IniSection = "postgresql"
)
