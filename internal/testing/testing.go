// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
)

// ErrStoreFailed is returned by [FailingStore] from every operation.
var ErrStoreFailed = errors.New("store failed")

// MemoryStore is a minimal in-memory [models.Store] test double that records calls.
type MemoryStore struct {
	Books  []models.Book
	NextID int64
	Calls  []string
	Closed bool
}

func (m *MemoryStore) Create(_ context.Context, book *models.Book) error {
	m.Calls = append(m.Calls, "Create")
	m.NextID++
	book.ID = m.NextID
	m.Books = append(m.Books, *book)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) (bool, error) {
	m.Calls = append(m.Calls, "Delete")
	idx := slices.IndexFunc(m.Books, func(b models.Book) bool { return b.ID == id })
	if idx < 0 {
		return false, nil
	}
	m.Books = slices.Delete(m.Books, idx, idx+1)
	return true, nil
}

func (m *MemoryStore) Find(_ context.Context, c models.Criteria) ([]models.Book, error) {
	m.Calls = append(m.Calls, "Find")
	var out []models.Book
	for _, b := range m.Books {
		if c.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryStore) All(_ context.Context) ([]models.Book, error) {
	m.Calls = append(m.Calls, "All")
	return slices.Clone(m.Books), nil
}

func (m *MemoryStore) Count(ctx context.Context, c models.Criteria) (int, error) {
	books, _ := m.Find(ctx, c)
	return len(books), nil
}

func (m *MemoryStore) Tally(_ context.Context) (int, int, error) {
	m.Calls = append(m.Calls, "Tally")
	read := 0
	for _, b := range m.Books {
		if b.Read {
			read++
		}
	}
	return len(m.Books), read, nil
}

func (m *MemoryStore) Close() error {
	m.Closed = true
	return nil
}

// FailingStore is a [models.Store] whose every operation fails with [ErrStoreFailed].
type FailingStore struct{}

func (FailingStore) Create(context.Context, *models.Book) error { return ErrStoreFailed }
func (FailingStore) Delete(context.Context, int64) (bool, error) {
	return false, ErrStoreFailed
}
func (FailingStore) Find(context.Context, models.Criteria) ([]models.Book, error) {
	return nil, ErrStoreFailed
}
func (FailingStore) All(context.Context) ([]models.Book, error) { return nil, ErrStoreFailed }
func (FailingStore) Count(context.Context, models.Criteria) (int, error) {
	return 0, ErrStoreFailed
}
func (FailingStore) Tally(context.Context) (int, int, error) { return 0, 0, ErrStoreFailed }
func (FailingStore) Close() error                            { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// FirstWriteFails rejects its first Write and buffers every later one
type FirstWriteFails struct {
	bytes.Buffer
	failed bool
}

func (f *FirstWriteFails) Write(p []byte) (int, error) {
	if !f.failed {
		f.failed = true
		return 0, errors.New("write failed")
	}
	return f.Buffer.Write(p)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
