package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

var (
	_ list.Item = menuItem{}
	_ list.Item = bookItem{}
)

// menuItem is one entry of the main menu.
type menuItem struct {
	action action
	title  string
	desc   string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{actionAdd, "Add book", "Record a new book in the catalog"},
		menuItem{actionRemove, "Remove a book", "Delete every book with a given title"},
		menuItem{actionSearch, "Search", "Find books by title or author"},
		menuItem{actionList, "Display all", "Show every book in the catalog"},
		menuItem{actionStats, "Statistics", "Total books and percentage read"},
		menuItem{actionExit, "Exit", "Save and quit"},
	}
}

// bookItem wraps [models.Book] to implement [list.Item].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string { return i.book.Title + " " + i.book.Author }
func (i bookItem) Title() string       { return fmt.Sprintf("%d. %s", i.book.ID, i.book.Title) }
func (i bookItem) Description() string {
	desc := fmt.Sprintf("%s • %d", i.book.Author, i.book.Year)
	if i.book.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.book.Genre)
	}
	return fmt.Sprintf("%s • %s", desc, shared.ReadStatus(i.book.Read))
}
