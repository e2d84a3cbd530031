// Package schema reads the Spanner DDL files under migrations/.
package schema

import (
	"fmt"
	"os"
	"strings"
)

// InitialSchema is the path of the base schema relative to the repo root.
const InitialSchema = "migrations/001_initial_schema.sql"

// ReadStatements loads a DDL file and splits it into statements.
func ReadStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	stmts := SplitStatements(string(b))
	if len(stmts) == 0 {
		return nil, fmt.Errorf("no DDL statements found in %s", path)
	}
	return stmts, nil
}

// SplitStatements splits DDL on ';'. Full-line "--" comments are dropped
// since UpdateDatabaseDdl rejects them.
func SplitStatements(sql string) []string {
	// Normalize line endings for Windows-authored files.
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
