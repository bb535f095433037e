package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

func TestOpenFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file opens empty", func(t *testing.T) {
		store, err := OpenFileStore(filepath.Join(t.TempDir(), "missing.json"), testLogger())
		if err != nil {
			t.Fatalf("OpenFileStore() error = %v", err)
		}

		all, _ := store.All(ctx)
		if len(all) != 0 {
			t.Errorf("expected empty catalog, got %d books", len(all))
		}
	})

	t.Run("corrupt file opens empty and accepts writes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("failed to write corrupt file: %v", err)
		}

		store, err := OpenFileStore(path, testLogger())
		if err != nil {
			t.Fatalf("OpenFileStore() error = %v", err)
		}

		book := models.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965}
		if err := store.Create(ctx, &book); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if book.ID != 1 {
			t.Errorf("expected id 1, got %d", book.ID)
		}
	})

	t.Run("empty file opens empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.json")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("failed to write empty file: %v", err)
		}

		store, err := OpenFileStore(path, testLogger())
		if err != nil {
			t.Fatalf("OpenFileStore() error = %v", err)
		}
		if total, _, _ := store.Tally(ctx); total != 0 {
			t.Errorf("expected empty catalog, got %d", total)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := OpenFileStore(filepath.Join(t.TempDir(), "library.xml"), testLogger())
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("reads a document without ids", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.json")
		doc := `[
  {"title": "The Great Gatsby", "author": "F. Scott Fitzgerald", "year": 1925, "genre": "Classic", "read": true},
  {"title": "Dune", "author": "Frank Herbert", "year": 1965, "genre": "", "read": false}
]`
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatalf("failed to write document: %v", err)
		}

		store, err := OpenFileStore(path, testLogger())
		if err != nil {
			t.Fatalf("OpenFileStore() error = %v", err)
		}

		all, _ := store.All(ctx)
		if len(all) != 2 {
			t.Fatalf("expected 2 books, got %d", len(all))
		}
		if all[0].ID != 1 || all[1].ID != 2 {
			t.Errorf("expected ids 1 and 2 in document order, got %d and %d", all[0].ID, all[1].ID)
		}
		if all[0].Title != "The Great Gatsby" || !all[0].Read {
			t.Errorf("unexpected first book: %+v", all[0])
		}
	})
}

func TestFileStorePersistence(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"library.json", "library.yaml", "library.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			store, err := OpenFileStore(path, testLogger())
			if err != nil {
				t.Fatalf("OpenFileStore() error = %v", err)
			}
			books := seedBooks(t, store)
			if _, err := store.Delete(ctx, books[0].ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			reopened, err := OpenFileStore(path, testLogger())
			if err != nil {
				t.Fatalf("reopen error = %v", err)
			}
			all, _ := reopened.All(ctx)
			if len(all) != len(books)-1 {
				t.Fatalf("expected %d books after reopen, got %d", len(books)-1, len(all))
			}
			for i, b := range all {
				want := books[i+1]
				if b.Title != want.Title || b.Author != want.Author || b.Year != want.Year || b.Genre != want.Genre || b.Read != want.Read {
					t.Errorf("book %d = %+v, want %+v", i, b, want)
				}
			}
		})
	}

	t.Run("document omits ids", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.json")
		store, _ := OpenFileStore(path, testLogger())
		seedBooks(t, store)
		if err := store.Save(); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read document: %v", err)
		}
		if strings.Contains(string(data), `"id"`) {
			t.Errorf("document should not contain ids: %s", data)
		}
		for _, key := range []string{`"title"`, `"author"`, `"year"`, `"genre"`, `"read"`} {
			if !strings.Contains(string(data), key) {
				t.Errorf("document missing key %s", key)
			}
		}
	})

	t.Run("Close without changes leaves file untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.json")
		if err := os.WriteFile(path, []byte("{corrupt"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		store, _ := OpenFileStore(path, testLogger())
		if err := store.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "{corrupt" {
			t.Errorf("expected file to be untouched, got %q", data)
		}
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("file backend", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Storage.File.Path = filepath.Join(t.TempDir(), "library.json")

		store, err := Open(ctx, config, testLogger())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer store.Close()

		if _, ok := store.(*FileStore); !ok {
			t.Errorf("expected *FileStore, got %T", store)
		}
	})

	t.Run("sql backend", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Storage.Backend = shared.BackendSQL
		config.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "shelf.db")

		store, err := Open(ctx, config, testLogger())
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer store.Close()

		book := models.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965}
		if err := store.Create(ctx, &book); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if book.ID != 1 {
			t.Errorf("expected id 1, got %d", book.ID)
		}
	})

	t.Run("sql backend without url", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Storage.Backend = shared.BackendSQL

		_, err := Open(ctx, config, testLogger())
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("sql backend unreachable", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Storage.Backend = shared.BackendSQL
		config.Database.URL = "/nonexistent/dir/shelf.db"

		_, err := Open(ctx, config, testLogger())
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}
