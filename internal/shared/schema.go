package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql
var schemaFiles embed.FS

// loadSchema reads the embedded schema files for dialect, sorted by file name.
func loadSchema(dialect Dialect) ([]string, error) {
	dir := path.Join("sql", dialectDir(dialect))

	entries, err := schemaFiles.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: no schema for dialect %s", ErrUnsupportedDriver, dialect)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		content, err := schemaFiles.ReadFile(path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", name, err)
		}
		scripts = append(scripts, string(content))
	}

	return scripts, nil
}

// EnsureSchema creates the books table and its indexes if they do not exist.
//
// Every statement is idempotent, so it is safe to call on each start. It does not alter existing tables.
func EnsureSchema(db *sql.DB, dialect Dialect) error {
	scripts, err := loadSchema(dialect)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, script := range scripts {
		for _, stmt := range splitStatements(script) {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
			}
		}
	}

	return tx.Commit()
}

// splitStatements strips comments and splits a script on semicolons, dropping empty statements.
func splitStatements(script string) []string {
	var stmts []string
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(removeComments(stmt))
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

func dialectDir(d Dialect) string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return string(d)
	}
}
