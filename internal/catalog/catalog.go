package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Options configures a [Catalog].
type Options struct {
	Logger  *log.Logger
	MinYear int // MinYear rejects books published earlier; zero disables the check
}

// Catalog is the repository of book records.
type Catalog struct {
	store   models.Store
	logger  *log.Logger
	minYear int
}

// New creates a Catalog backed by store.
func New(store models.Store, opts Options) *Catalog {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	return &Catalog{
		store:   store,
		logger:  opts.Logger,
		minYear: opts.MinYear,
	}
}

// Store returns the backend the catalog writes to.
func (c *Catalog) Store() models.Store { return c.store }

// AddBook normalizes and validates a new record, persists it, and returns it with its assigned ID.
func (c *Catalog) AddBook(ctx context.Context, title, author string, year int, genre string, read bool) (models.Book, error) {
	book := models.Book{Title: title, Author: author, Year: year, Genre: genre, Read: read}.Normalized()

	if err := book.Validate(c.minYear); err != nil {
		return models.Book{}, err
	}

	if err := c.store.Create(ctx, &book); err != nil {
		return models.Book{}, fmt.Errorf("failed to add book: %w", err)
	}

	c.logger.Info("book added", "id", book.ID, "title", book.Title)
	return book, nil
}

// RemoveBooksByIDs deletes every listed book that exists and returns the IDs actually deleted, in request order.
//
// Unknown and repeated IDs are skipped.
func (c *Catalog) RemoveBooksByIDs(ctx context.Context, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	deleted := make([]int64, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		ok, err := c.store.Delete(ctx, id)
		if err != nil {
			return deleted, fmt.Errorf("failed to remove book %d: %w", id, err)
		}
		if ok {
			deleted = append(deleted, id)
		}
	}

	c.logger.Info("books removed", "requested", len(ids), "deleted", len(deleted))
	return deleted, nil
}

// RemoveBookByTitle deletes every book whose title equals title, ignoring case, and returns the removed records.
//
// An empty result means no book had that title.
func (c *Catalog) RemoveBookByTitle(ctx context.Context, title string) ([]models.Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	matches, err := c.store.Find(ctx, models.Criteria{Field: models.FieldTitle, Query: title, Mode: models.MatchExact})
	if err != nil {
		return nil, fmt.Errorf("failed to find books: %w", err)
	}

	removed := make([]models.Book, 0, len(matches))
	for _, book := range matches {
		ok, err := c.store.Delete(ctx, book.ID)
		if err != nil {
			return removed, fmt.Errorf("failed to remove book %d: %w", book.ID, err)
		}
		if ok {
			removed = append(removed, book)
		}
	}

	c.logger.Info("books removed by title", "title", title, "deleted", len(removed))
	return removed, nil
}

// SearchBooks returns every book whose field matches query under mode. An empty query returns the whole catalog.
func (c *Catalog) SearchBooks(ctx context.Context, field models.Field, query string, mode models.MatchMode) ([]models.Book, error) {
	books, err := c.store.Find(ctx, models.Criteria{Field: field, Query: query, Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}

	c.logger.Debug("search", "field", field, "query", query, "mode", mode, "results", len(books))
	return books, nil
}

// ListAllBooks returns every book in backend order.
func (c *Catalog) ListAllBooks(ctx context.Context) ([]models.Book, error) {
	books, err := c.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetStatistics returns the total count and the percentage read, both taken from one snapshot of the store.
func (c *Catalog) GetStatistics(ctx context.Context) (models.Statistics, error) {
	total, read, err := c.store.Tally(ctx)
	if err != nil {
		return models.Statistics{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return models.NewStatistics(total, read), nil
}

// ExportBooks renders the whole catalog in the given [formatter.Format].
func (c *Catalog) ExportBooks(ctx context.Context, format formatter.Format) ([]byte, error) {
	books, err := c.ListAllBooks(ctx)
	if err != nil {
		return nil, err
	}

	read := 0
	for _, b := range books {
		if b.Read {
			read++
		}
	}

	return formatter.Export(format, books, models.NewStatistics(len(books), read))
}
