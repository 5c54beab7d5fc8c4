// Package database provides the query facade over the hh vacancy database.
//
// FILE: errors.go
// PURPOSE: Error taxonomy for the facade. Nothing here is recovered
// internally; callers use errors.Is to decide how to report a failure.
package database

import (
	"errors"
)

// Error types for the facade
var (
	// ErrConnection marks any failure while building the facade: unknown
	// driver, bad connection parameters, unreachable server, rejected credentials.
	ErrConnection = errors.New("database connection failed")

	// ErrUnsupportedDriver is returned for a driver name with no dialect
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrNoSalaryData is returned when no vacancy states a salary, so the
	// average is NULL and cannot be formatted.
	ErrNoSalaryData = errors.New("no vacancies with a stated salary")
)

// IsConnectionError returns true for errors raised while connecting,
// as opposed to failures of an individual query.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}
