package database

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// SQLite's built-in lower() folds ASCII only. Vacancy titles are mostly
// Cyrillic, so keyword search needs full Unicode folding on this driver too.
func init() {
	if err := sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("registering sqlite lower: %v", err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
