package models

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// Book is a single catalog record.
//
// ID is assigned by the [Store] on creation and never changes afterwards.
type Book struct {
	ID     int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
	Genre  string `json:"genre" yaml:"genre"`
	Read   bool   `json:"read" yaml:"read"`
}

// Normalized returns a copy of b with title, author and genre title-cased.
func (b Book) Normalized() Book {
	b.Title = shared.NormalizeText(b.Title)
	b.Author = shared.NormalizeText(b.Author)
	b.Genre = shared.NormalizeText(b.Genre)
	return b
}

// Validate checks the required fields. A minYear of zero disables the year check.
func (b Book) Validate(minYear int) error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(b.Author) == "" {
		return fmt.Errorf("%w: author is required", shared.ErrInvalidInput)
	}
	if minYear > 0 && b.Year < minYear {
		return fmt.Errorf("%w: year %d is before %d", shared.ErrInvalidInput, b.Year, minYear)
	}
	return nil
}

// Value returns the text of the given field.
func (b Book) Value(f Field) string {
	switch f {
	case FieldAuthor:
		return b.Author
	default:
		return b.Title
	}
}

// Field names a searchable text column.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
)

// ParseField converts user input into a [Field]. Empty input selects [FieldTitle].
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title", "1":
		return FieldTitle, nil
	case "author", "2":
		return FieldAuthor, nil
	default:
		return "", fmt.Errorf("%w: unknown search field %q", shared.ErrInvalidArgument, s)
	}
}

// MatchMode selects how a query is compared to a field. Both modes ignore case.
type MatchMode string

const (
	MatchExact     MatchMode = "exact"
	MatchSubstring MatchMode = "substring"
)

// ParseMatchMode converts user input into a [MatchMode]. Empty input selects [MatchSubstring].
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring", "contains":
		return MatchSubstring, nil
	case "exact":
		return MatchExact, nil
	default:
		return "", fmt.Errorf("%w: unknown match mode %q", shared.ErrInvalidArgument, s)
	}
}

// Criteria is the predicate accepted by [Store.Find] and [Store.Count].
//
// An empty Query matches every record. Read, when set, restricts matches to that read status.
type Criteria struct {
	Field Field
	Query string
	Mode  MatchMode
	Read  *bool
}

// All returns criteria matching every record.
func All() Criteria { return Criteria{} }

// Matches reports whether b satisfies c.
func (c Criteria) Matches(b Book) bool {
	if c.Read != nil && b.Read != *c.Read {
		return false
	}

	query := strings.TrimSpace(c.Query)
	if query == "" {
		return true
	}

	field := c.Field
	if field == "" {
		field = FieldTitle
	}

	value := shared.FoldText(b.Value(field))
	query = shared.FoldText(query)

	if c.Mode == MatchExact {
		return value == query
	}
	return strings.Contains(value, query)
}

// Statistics summarizes the catalog.
type Statistics struct {
	Total       int     `json:"total"`
	Read        int     `json:"read"`
	PercentRead float64 `json:"percent_read"`
}

// NewStatistics computes the read percentage, rounded to one decimal place.
func NewStatistics(total, read int) Statistics {
	stats := Statistics{Total: total, Read: read}
	if total > 0 {
		stats.PercentRead = math.Round(float64(read)/float64(total)*1000) / 10
	}
	return stats
}

// Store is the capability set of a storage backend.
//
// Implementations own the durable representation of the catalog; callers hold no copy across calls.
type Store interface {
	Create(ctx context.Context, book *Book) error               // Create persists book and sets its ID
	Delete(ctx context.Context, id int64) (bool, error)         // Delete removes a record, reporting whether one existed
	Find(ctx context.Context, c Criteria) ([]Book, error)       // Find returns every record matching c
	All(ctx context.Context) ([]Book, error)                    // All returns every record in backend order
	Count(ctx context.Context, c Criteria) (int, error)         // Count returns the number of records matching c
	Tally(ctx context.Context) (total int, read int, err error) // Tally counts all and read records from one snapshot
	Close() error                                               // Close releases the backend, flushing pending state
}
