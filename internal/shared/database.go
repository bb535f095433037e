package shared

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// sqliteDriver is go-sqlite3 with a fold(text) SQL function backed by [FoldText], since the built-in
// LOWER only folds ASCII.
const sqliteDriver = "sqlite3_shelf"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", FoldText, true)
		},
	})
}

// Dialect identifies the SQL flavor spoken by a connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// ResolveDriver maps a connection string to a [Dialect] and the DSN handed to that driver.
//
//   - postgres://, postgresql:// → postgres (DSN unchanged)
//   - sqlite://path → sqlite3 (path)
//   - file:..., :memory:, or a plain path → sqlite3 (unchanged)
func ResolveDriver(url string) (Dialect, string, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		return "", "", fmt.Errorf("%w: empty database url", ErrMissingConfig)
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.Contains(url, "://"):
		scheme := url[:strings.Index(url, "://")]
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedDriver, scheme)
	default:
		return DialectSQLite, url, nil
	}
}

// NewDatabase opens a connection pool for the given connection string and verifies it is reachable.
//
// The path can be ":memory:" for an in-memory SQLite database, which is pinned to a single connection
// so every caller sees the same database.
func NewDatabase(url string) (*sql.DB, error) {
	dialect, dsn, err := ResolveDriver(url)
	if err != nil {
		return nil, err
	}

	driver := string(dialect)
	if dialect == DialectSQLite {
		driver = sqliteDriver
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStoreUnavailable, err)
	}

	if dialect == DialectSQLite && isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrStoreUnavailable, err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
//
// Non-positive values leave the driver defaults in place.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
