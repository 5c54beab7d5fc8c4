package database

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the reference DDL for a driver (postgres, mysql, sqlite).
// The facade never runs it; it documents the tables the queries expect.
func Schema(driver string) (string, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return "", err
	}

	content, err := schemaFS.ReadFile("schema/" + dialect.Name + ".sql")
	if err != nil {
		return "", fmt.Errorf("reading %s schema: %w", dialect.Name, err)
	}
	return string(content), nil
}

// SchemaStatements splits the reference DDL into single statements,
// for drivers that refuse multi-statement Exec. Comment lines are dropped
// before splitting, and a statement ends only at a ';' closing a line.
func SchemaStatements(driver string) ([]string, error) {
	content, err := Schema(driver)
	if err != nil {
		return nil, err
	}
	return splitStatements(content), nil
}

func splitStatements(content string) []string {
	var statements []string
	var current []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current = append(current, line)
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimRight(strings.Join(current, "\n"), " \t\r"), ";")
			statements = append(statements, stmt)
			current = nil
		}
	}
	if len(current) > 0 {
		statements = append(statements, strings.Join(current, "\n"))
	}
	return statements
}
