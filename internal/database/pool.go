package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/willfong/hh-vacancies/internal/config"
)

// Pool wraps a sql.DB with query accounting and dialect-aware rebinding.
// It is safe for concurrent use: every query borrows its own connection.
type Pool struct {
	db      *sql.DB
	config  config.DatabaseConfig
	dialect Dialect
	dsn     string

	// Metrics
	totalQueries   atomic.Int64
	failedQueries  atomic.Int64
	totalLatencyNs atomic.Int64
}

// NewPool creates a new database connection pool with the given configuration.
// No connection is made until Connect or the first query.
func NewPool(cfg config.DatabaseConfig) (*Pool, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := dialect.BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if dialect.Name == "postgres" {
		// Parse with pgx so malformed URLs fail here and PG* env vars fill gaps
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres config: %w", err)
		}
		db = stdlib.OpenDB(*connConfig)
	} else {
		db, err = sql.Open(dialect.DriverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	// Apply pool configuration
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	pool := &Pool{
		db:      db,
		config:  cfg,
		dialect: dialect,
		dsn:     dsn,
	}

	return pool, nil
}

// Connect verifies the database connection is working
func (p *Pool) Connect(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close gracefully shuts down the connection pool
func (p *Pool) Close() error {
	return p.db.Close()
}

// Dialect returns the dialect the pool was opened with
func (p *Pool) Dialect() Dialect {
	return p.dialect
}

// MaskedDSN returns the connection string with the password hidden
func (p *Pool) MaskedDSN() string {
	return p.dialect.MaskDSN(p.dsn)
}

// QueryContext executes a query and returns rows
func (p *Pool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := p.db.QueryContext(ctx, p.dialect.Rebind(query), args...)
	p.recordQuery(time.Since(start), err)
	return rows, err
}

// QueryRowContext executes a query expected to return at most one row.
// Errors surface on Scan, so they are not counted as failures here.
func (p *Pool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := p.db.QueryRowContext(ctx, p.dialect.Rebind(query), args...)
	p.recordQuery(time.Since(start), row.Err())
	return row
}

// recordQuery updates internal metrics
func (p *Pool) recordQuery(duration time.Duration, err error) {
	p.totalQueries.Add(1)
	p.totalLatencyNs.Add(duration.Nanoseconds())
	if err != nil {
		p.failedQueries.Add(1)
	}
}

// Stats returns current pool statistics
func (p *Pool) Stats() PoolStats {
	dbStats := p.db.Stats()
	return PoolStats{
		OpenConnections:   dbStats.OpenConnections,
		InUse:             dbStats.InUse,
		Idle:              dbStats.Idle,
		WaitCount:         dbStats.WaitCount,
		WaitDuration:      dbStats.WaitDuration,
		MaxIdleClosed:     dbStats.MaxIdleClosed,
		MaxLifetimeClosed: dbStats.MaxLifetimeClosed,
		TotalQueries:      p.totalQueries.Load(),
		FailedQueries:     p.failedQueries.Load(),
		AvgLatency:        p.averageLatency(),
	}
}

func (p *Pool) averageLatency() time.Duration {
	total := p.totalQueries.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(p.totalLatencyNs.Load() / total)
}

// PoolStats contains connection pool and query statistics
type PoolStats struct {
	// Connection pool stats
	OpenConnections   int
	InUse             int
	Idle              int
	WaitCount         int64
	WaitDuration      time.Duration
	MaxIdleClosed     int64
	MaxLifetimeClosed int64

	// Query stats
	TotalQueries  int64
	FailedQueries int64
	AvgLatency    time.Duration
}
