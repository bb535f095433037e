package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
)

// FileStore implements [models.Store] as an ordered in-memory list mirrored to a document on disk.
//
// The document is loaded once by [OpenFileStore] and written back by [FileStore.Save] or [FileStore.Close].
// IDs are not part of the document: records are numbered 1..n in document order when loaded, and new
// records continue from there, so an ID is never handed out twice within one session.
type FileStore struct {
	mu     sync.Mutex
	path   string
	codec  codec
	books  []models.Book
	nextID int64
	dirty  bool
	logger *log.Logger
}

// OpenFileStore loads the catalog document at path.
//
// A missing, empty, or unparseable document yields an empty catalog; only an unsupported file extension is an error.
func OpenFileStore(path string, logger *log.Logger) (*FileStore, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	s := &FileStore{path: path, codec: c, nextID: 1, logger: logger}
	s.load()
	return s, nil
}

// load reads the document into memory, falling back to an empty catalog on any failure.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("catalog file not found, starting empty", "path", s.path)
		return
	}
	if err != nil {
		s.logger.Warn("failed to read catalog file, starting empty", "path", s.path, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	docs, err := s.codec.Unmarshal(data)
	if err != nil {
		s.logger.Warn("catalog file is corrupt, starting empty", "path", s.path, "error", err)
		return
	}

	s.books = make([]models.Book, 0, len(docs))
	for _, d := range docs {
		s.books = append(s.books, models.Book{
			ID:     s.nextID,
			Title:  d.Title,
			Author: d.Author,
			Year:   d.Year,
			Genre:  d.Genre,
			Read:   d.Read,
		})
		s.nextID++
	}

	s.logger.Debug("loaded catalog file", "path", s.path, "books", len(s.books))
}

// Path returns the location of the backing document.
func (s *FileStore) Path() string { return s.path }

// Create appends book to the catalog and sets its ID.
func (s *FileStore) Create(_ context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = s.nextID
	s.nextID++
	s.books = append(s.books, *book)
	s.dirty = true
	return nil
}

// Delete removes the book with the given id, reporting whether it existed.
func (s *FileStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.books, func(b models.Book) bool { return b.ID == id })
	if idx < 0 {
		return false, nil
	}

	s.books = slices.Delete(s.books, idx, idx+1)
	s.dirty = true
	return true, nil
}

// Find returns the books matching c in insertion order.
func (s *FileStore) Find(_ context.Context, c models.Criteria) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var books []models.Book
	for _, b := range s.books {
		if c.Matches(b) {
			books = append(books, b)
		}
	}
	return books, nil
}

// All returns a copy of every book in insertion order.
func (s *FileStore) All(_ context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.books), nil
}

// Count returns the number of books matching c.
func (s *FileStore) Count(_ context.Context, c models.Criteria) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, b := range s.books {
		if c.Matches(b) {
			n++
		}
	}
	return n, nil
}

// Tally counts all and read books under a single lock.
func (s *FileStore) Tally(_ context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	read := 0
	for _, b := range s.books {
		if b.Read {
			read++
		}
	}
	return len(s.books), read, nil
}

// Save writes the catalog to disk, replacing the document atomically.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save()
}

func (s *FileStore) save() error {
	docs := make([]documentBook, 0, len(s.books))
	for _, b := range s.books {
		docs = append(docs, documentBook{Title: b.Title, Author: b.Author, Year: b.Year, Genre: b.Genre, Read: b.Read})
	}

	data, err := s.codec.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary catalog file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}

	s.dirty = false
	s.logger.Debug("saved catalog file", "path", s.path, "books", len(s.books))
	return nil
}

// Close saves pending changes.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	return s.save()
}
