// Package database provides the query facade over the hh vacancy database.
//
// FILE: queries.go
// PURPOSE: DBManager, the facade type, and its constructor. Every read the
// tool performs goes through a DBManager method.
//
// KEY TYPES:
// - DBManager: holds the connection pool; safe for concurrent use
//
// RELATED FILES:
// - queries_employer.go: Vacancy counts per employer
// - queries_vacancy.go: Vacancy listing and keyword search
// - queries_salary.go: Average salary and the above-average filter
// - scanners.go: Row scanning helper functions
// - pool.go: sql.DB wrapper with query accounting
package database

import (
	"context"
	"fmt"

	"github.com/willfong/hh-vacancies/internal/config"
)

// DBManager provides the read queries over the employers and vacancies tables
type DBManager struct {
	pool *Pool
}

// NewDBManager opens a pool for cfg and verifies it with a ping.
// Any failure is returned wrapped in ErrConnection and no manager is returned.
func NewDBManager(ctx context.Context, cfg config.DatabaseConfig) (*DBManager, error) {
	pool, err := NewPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if err := pool.Connect(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return &DBManager{pool: pool}, nil
}

// Close releases the pool. The manager must not be used afterwards.
func (m *DBManager) Close() error {
	return m.pool.Close()
}

// Pool returns the underlying pool
func (m *DBManager) Pool() *Pool {
	return m.pool
}

// Stats returns pool and query statistics
func (m *DBManager) Stats() PoolStats {
	return m.pool.Stats()
}
