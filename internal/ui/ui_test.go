package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	tu "github.com/desertthunder/shelf/internal/testing"
)

func newTestModel(t *testing.T, books ...models.Book) (*Model, *tu.MemoryStore) {
	t.Helper()

	store := &tu.MemoryStore{}
	for _, b := range books {
		if err := store.Create(context.Background(), &b); err != nil {
			t.Fatalf("failed to seed store: %v", err)
		}
	}

	c := catalog.New(store, catalog.Options{Logger: shared.NewLogger(io.Discard), MinYear: 1800})
	return NewModel(context.Background(), c), store
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// run executes a catalog command and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}

	msg, ok := cmd().(Msg)
	if !ok {
		t.Fatalf("expected Msg, got %T", msg)
	}
	m.Update(msg)
}

func TestMenu(t *testing.T) {
	t.Run("has six entries", func(t *testing.T) {
		m, _ := newTestModel(t)
		if got := len(m.menu.Items()); got != 6 {
			t.Errorf("expected 6 menu entries, got %d", got)
		}
	})

	t.Run("exit quits", func(t *testing.T) {
		m, _ := newTestModel(t)
		for range 5 {
			press(m, tea.KeyDown)
		}

		cmd := press(m, tea.KeyEnter)
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestAddBook(t *testing.T) {
	t.Run("submits the form", func(t *testing.T) {
		m, store := newTestModel(t)

		press(m, tea.KeyEnter)
		if m.view != FormView {
			t.Fatalf("expected form view, got %v", m.view)
		}

		var cmd tea.Cmd
		for i, value := range []string{"dune", "frank herbert", "1965", "science fiction", "y"} {
			typeText(m, value)
			cmd = press(m, tea.KeyEnter)
			if i < 4 && m.focus != i+1 {
				t.Fatalf("expected focus on input %d, got %d", i+1, m.focus)
			}
		}
		run(t, m, cmd)

		if m.view != MessageView {
			t.Fatalf("expected message view, got %v", m.view)
		}
		if len(store.Books) != 1 {
			t.Fatalf("expected 1 book, got %d", len(store.Books))
		}
		if got := store.Books[0]; got.Title != "Dune" || got.Author != "Frank Herbert" || !got.Read {
			t.Errorf("unexpected book: %+v", got)
		}
		if !strings.Contains(m.View(), "Book added successfully!") {
			t.Errorf("expected success message, got %q", m.View())
		}
	})

	t.Run("rejects a non numeric year", func(t *testing.T) {
		m, store := newTestModel(t)
		m.start(actionAdd)

		for _, value := range []string{"Dune", "Frank Herbert", "soon", "Sci-Fi"} {
			typeText(m, value)
			press(m, tea.KeyEnter)
		}
		if cmd := press(m, tea.KeyEnter); cmd != nil {
			t.Error("expected no command for invalid form")
		}

		if m.view != FormView || m.formErr == "" {
			t.Errorf("expected form error, got view %v err %q", m.view, m.formErr)
		}
		if len(store.Calls) != 0 {
			t.Errorf("expected no store calls, got %v", store.Calls)
		}
	})

	t.Run("keeps the form on catalog validation errors", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.start(actionAdd)

		var cmd tea.Cmd
		for _, value := range []string{"Beowulf", "Unknown", "1000", "Epic", "n"} {
			typeText(m, value)
			cmd = press(m, tea.KeyEnter)
		}
		run(t, m, cmd)

		if m.view != FormView {
			t.Errorf("expected form view, got %v", m.view)
		}
		if m.formErr == "" {
			t.Error("expected validation message")
		}
	})

	t.Run("escape returns to menu", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.start(actionAdd)
		press(m, tea.KeyEsc)

		if m.view != MenuView {
			t.Errorf("expected menu view, got %v", m.view)
		}
	})
}

func TestRemoveBook(t *testing.T) {
	seed := []models.Book{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{Title: "Emma", Author: "Jane Austen", Year: 1815},
	}

	tests := []struct {
		name      string
		title     string
		remaining int
		message   string
	}{
		{name: "matching title", title: "dune", remaining: 1, message: "Deleted 1 book(s)"},
		{name: "unknown title", title: "Ulysses", remaining: 2, message: "No books found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newTestModel(t, seed...)
			m.start(actionRemove)
			typeText(m, tt.title)
			run(t, m, press(m, tea.KeyEnter))

			if len(store.Books) != tt.remaining {
				t.Errorf("expected %d books, got %d", tt.remaining, len(store.Books))
			}
			if !strings.Contains(m.message, tt.message) {
				t.Errorf("expected %q in %q", tt.message, m.message)
			}
		})
	}
}

func TestSearchAndList(t *testing.T) {
	seed := []models.Book{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{Title: "Emma", Author: "Jane Austen", Year: 1815},
		{Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969},
	}

	t.Run("search by author", func(t *testing.T) {
		m, _ := newTestModel(t, seed...)
		m.start(actionSearch)
		typeText(m, "author")
		press(m, tea.KeyEnter)
		typeText(m, "herbert")
		run(t, m, press(m, tea.KeyEnter))

		if m.view != BooksView {
			t.Fatalf("expected books view, got %v", m.view)
		}
		if got := len(m.books.Items()); got != 2 {
			t.Errorf("expected 2 results, got %d", got)
		}
	})

	t.Run("unknown search field", func(t *testing.T) {
		m, _ := newTestModel(t, seed...)
		m.start(actionSearch)
		typeText(m, "isbn")
		press(m, tea.KeyEnter)

		if cmd := press(m, tea.KeyEnter); cmd != nil {
			t.Error("expected no command")
		}
		if m.formErr == "" {
			t.Error("expected form error")
		}
	})

	t.Run("display all", func(t *testing.T) {
		m, _ := newTestModel(t, seed...)
		_, cmd := m.start(actionList)
		run(t, m, cmd)

		if got := len(m.books.Items()); got != 3 {
			t.Errorf("expected 3 books, got %d", got)
		}

		press(m, tea.KeyEsc)
		if m.view != MenuView {
			t.Errorf("expected menu view, got %v", m.view)
		}
	})

	t.Run("display all on empty catalog", func(t *testing.T) {
		m, _ := newTestModel(t)
		_, cmd := m.start(actionList)
		run(t, m, cmd)

		if m.view != MessageView || !strings.Contains(m.message, "Your library is empty") {
			t.Errorf("expected empty message, got view %v message %q", m.view, m.message)
		}
	})
}

func TestStatistics(t *testing.T) {
	m, _ := newTestModel(t,
		models.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Read: true},
		models.Book{Title: "Emma", Author: "Jane Austen", Year: 1815},
		models.Book{Title: "Ulysses", Author: "James Joyce", Year: 1922},
	)

	_, cmd := m.start(actionStats)
	run(t, m, cmd)

	for _, want := range []string{"Total books: 3", "Percentage read: 33.3%"} {
		if !strings.Contains(m.message, want) {
			t.Errorf("expected %q in %q", want, m.message)
		}
	}
}
