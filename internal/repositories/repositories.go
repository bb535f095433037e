// package repositories provides persistence layer implementations for the book catalog.
package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

var (
	_ models.Store = (*SQLStore)(nil)
	_ models.Store = (*FileStore)(nil)
)

// Open constructs the [models.Store] selected by config.
//
// The sql backend requires a database url; a missing url or an unreachable database is returned as an error
// the caller is expected to treat as fatal.
func Open(ctx context.Context, config *shared.Config, logger *log.Logger) (models.Store, error) {
	switch config.Storage.Backend {
	case shared.BackendSQL:
		if config.Database.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL is not set", shared.ErrMissingConfig)
		}

		db, dialect, err := openDatabase(config.Database)
		if err != nil {
			return nil, err
		}
		logger.Debug("opened relational store", "dialect", dialect)
		return NewSQLStore(db, dialect), nil
	case shared.BackendFile, "":
		path := config.Storage.File.Path
		if path == "" {
			return nil, fmt.Errorf("%w: storage.file.path is empty", shared.ErrMissingConfig)
		}
		return OpenFileStore(path, logger)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", shared.ErrInvalidConfig, config.Storage.Backend)
	}
}

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
//
// Queries in this package never contain a literal question mark.
func rebind(dialect shared.Dialect, query string) string {
	if dialect != shared.DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
