package shared

import (
	"errors"
	"testing"
)

func TestResolveDriver(t *testing.T) {
	tc := []struct {
		name        string
		url         string
		wantDialect Dialect
		wantDSN     string
		wantErr     error
	}{
		{name: "postgres", url: "postgres://u:p@host/db?sslmode=require", wantDialect: DialectPostgres, wantDSN: "postgres://u:p@host/db?sslmode=require"},
		{name: "postgresql", url: "postgresql://host/db", wantDialect: DialectPostgres, wantDSN: "postgresql://host/db"},
		{name: "sqlite scheme", url: "sqlite://./shelf.db", wantDialect: DialectSQLite, wantDSN: "./shelf.db"},
		{name: "plain path", url: "/var/lib/shelf.db", wantDialect: DialectSQLite, wantDSN: "/var/lib/shelf.db"},
		{name: "memory", url: ":memory:", wantDialect: DialectSQLite, wantDSN: ":memory:"},
		{name: "unsupported scheme", url: "mysql://host/db", wantErr: ErrUnsupportedDriver},
		{name: "empty", url: "  ", wantErr: ErrMissingConfig},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			dialect, dsn, err := ResolveDriver(tt.url)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDriver() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDriver() unexpected error: %v", err)
			}
			if dialect != tt.wantDialect || dsn != tt.wantDSN {
				t.Errorf("ResolveDriver() = (%s, %s), want (%s, %s)", dialect, dsn, tt.wantDialect, tt.wantDSN)
			}
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	t.Run("loadSchema", func(t *testing.T) {
		for _, d := range []Dialect{DialectSQLite, DialectPostgres} {
			scripts, err := loadSchema(d)
			if err != nil {
				t.Fatalf("failed to load schema for %s: %v", d, err)
			}
			if len(scripts) == 0 {
				t.Fatalf("expected at least one schema script for %s", d)
			}
		}

		if _, err := loadSchema(Dialect("mysql")); !errors.Is(err, ErrUnsupportedDriver) {
			t.Errorf("expected ErrUnsupportedDriver, got %v", err)
		}
	})

	t.Run("creates books table", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := EnsureSchema(db, DialectSQLite); err != nil {
			t.Fatalf("failed to ensure schema: %v", err)
		}

		if _, err := db.Exec("SELECT id, title, author, year, genre, read FROM books LIMIT 1"); err != nil {
			t.Errorf("books table should exist: %v", err)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := EnsureSchema(db, DialectSQLite); err != nil {
			t.Fatalf("first EnsureSchema failed: %v", err)
		}
		if _, err := db.Exec("INSERT INTO books (title, author, year, genre, read) VALUES ('Dune', 'Frank Herbert', 1965, 'Sci-Fi', 1)"); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
		if err := EnsureSchema(db, DialectSQLite); err != nil {
			t.Fatalf("second EnsureSchema failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM books").Scan(&count); err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected existing rows to survive, got %d", count)
		}
	})

	t.Run("splitStatements", func(t *testing.T) {
		stmts := splitStatements("-- comment\nCREATE TABLE a (x INT);\n\n;CREATE INDEX i ON a (x); -- trailing")
		if len(stmts) != 2 {
			t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
		}
	})
}

func TestNewDatabase(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		if _, err := NewDatabase("mongodb://localhost"); !errors.Is(err, ErrUnsupportedDriver) {
			t.Errorf("expected ErrUnsupportedDriver, got %v", err)
		}
	})

	t.Run("sqlite has a unicode fold function", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		var got string
		if err := db.QueryRow("SELECT fold(?)", "ÉMILE Kästner").Scan(&got); err != nil {
			t.Fatalf("failed to call fold: %v", err)
		}
		if want := "émile kästner"; got != want {
			t.Errorf("fold() = %q, want %q", got, want)
		}
	})

	t.Run("unreachable sqlite path", func(t *testing.T) {
		_, err := NewDatabase("/nonexistent/dir/shelf.db")
		if !errors.Is(err, ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}
