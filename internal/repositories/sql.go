package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

const bookColumns = "id, title, author, year, genre, read"

// SQLStore implements [models.Store] over a relational books table.
//
// Each method checks a connection out of the pool for the duration of one statement and returns it on every
// exit path. No connection is held between calls.
type SQLStore struct {
	db      *sql.DB
	dialect shared.Dialect
}

// NewSQLStore creates a new SQLStore using db, whose schema must already exist (see [shared.EnsureSchema]).
func NewSQLStore(db *sql.DB, dialect shared.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// openDatabase connects to the configured database and ensures the books table exists.
func openDatabase(config shared.DatabaseConfig) (*sql.DB, shared.Dialect, error) {
	dialect, _, err := shared.ResolveDriver(config.URL)
	if err != nil {
		return nil, "", err
	}

	db, err := shared.NewDatabase(config.URL)
	if err != nil {
		return nil, "", err
	}

	shared.ConfigureDatabase(db, config.MaxOpenConns, config.MaxIdleConns)

	if err := shared.EnsureSchema(db, dialect); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	return db, dialect, nil
}

// withConn runs fn on a connection scoped to this call.
func (s *SQLStore) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to acquire connection: %v", shared.ErrStoreUnavailable, err)
	}
	defer conn.Close()

	return fn(conn)
}

// Create inserts book and sets its ID to the key assigned by the database.
func (s *SQLStore) Create(ctx context.Context, book *models.Book) error {
	query := rebind(s.dialect, `
		INSERT INTO books (title, author, year, genre, read)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	return s.withConn(ctx, func(conn *sql.Conn) error {
		var id int64
		err := conn.QueryRowContext(ctx, query, book.Title, book.Author, book.Year, book.Genre, book.Read).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert book: %w", err)
		}
		book.ID = id
		return nil
	})
}

// Delete removes the book with the given id. It reports false when no such book exists.
func (s *SQLStore) Delete(ctx context.Context, id int64) (bool, error) {
	query := rebind(s.dialect, "DELETE FROM books WHERE id = ?")

	var deleted bool
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		deleted = rows > 0
		return nil
	})

	return deleted, err
}

// Find retrieves all books matching c in primary key order.
func (s *SQLStore) Find(ctx context.Context, c models.Criteria) ([]models.Book, error) {
	where, args := s.where(c)
	query := rebind(s.dialect, "SELECT "+bookColumns+" FROM books"+where+" ORDER BY id ASC")

	var books []models.Book
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to query books: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			book, err := scanBook(rows)
			if err != nil {
				return err
			}
			books = append(books, book)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("row iteration error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// All retrieves every book in primary key order.
func (s *SQLStore) All(ctx context.Context) ([]models.Book, error) {
	return s.Find(ctx, models.All())
}

// Count returns the number of books matching c.
func (s *SQLStore) Count(ctx context.Context, c models.Criteria) (int, error) {
	where, args := s.where(c)
	query := rebind(s.dialect, "SELECT COUNT(*) FROM books"+where)

	var count int
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		if err := conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return fmt.Errorf("failed to count books: %w", err)
		}
		return nil
	})

	return count, err
}

// Tally counts all books and read books in one statement, so both numbers describe the same snapshot.
func (s *SQLStore) Tally(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(CASE WHEN read THEN 1 ELSE 0 END), 0) FROM books`

	var total, read int
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		if err := conn.QueryRowContext(ctx, query).Scan(&total, &read); err != nil {
			return fmt.Errorf("failed to tally books: %w", err)
		}
		return nil
	})

	return total, read, err
}

// Close closes the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// where translates c into a WHERE clause with ? placeholders.
//
// Both sides are case folded so matching ignores case beyond ASCII. SQLite compares with the fold
// function registered by [shared.NewDatabase]; PostgreSQL uses LOWER, which follows the database locale.
func (s *SQLStore) where(c models.Criteria) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if query := strings.TrimSpace(c.Query); query != "" {
		column := "title"
		if c.Field == models.FieldAuthor {
			column = "author"
		}

		fold := "fold"
		if s.dialect == shared.DialectPostgres {
			fold = "LOWER"
		}

		if c.Mode == models.MatchExact {
			clauses = append(clauses, fmt.Sprintf("%[1]s(%[2]s) = %[1]s(?)", fold, column))
			args = append(args, query)
		} else {
			clauses = append(clauses, fmt.Sprintf(`%[1]s(%[2]s) LIKE %[1]s(?) ESCAPE '\'`, fold, column))
			args = append(args, containsPattern(query))
		}
	}

	if c.Read != nil {
		clauses = append(clauses, "read = ?")
		args = append(args, *c.Read)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanBook scans the current row of rows into a [models.Book].
func scanBook(rows *sql.Rows) (models.Book, error) {
	var book models.Book
	err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Year, &book.Genre, &book.Read)
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to scan book: %w", err)
	}
	return book, nil
}
