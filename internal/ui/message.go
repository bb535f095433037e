package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBooksLoaded MsgKind = iota
	MsgBookAdded
	MsgBooksRemoved
	MsgStatsLoaded
)

type booksLoaded struct {
	title string
	empty string
	books []models.Book
	err   error
}

type bookAdded struct {
	book models.Book
	err  error
}

type booksRemoved struct {
	title string
	books []models.Book
	err   error
}

type statsLoaded struct {
	stats models.Statistics
	err   error
}

// booksLoadedMsg is the constructor for [MsgBooksLoaded]. empty is shown instead of the list when books is empty.
func booksLoadedMsg(title, empty string, books []models.Book, err error) Msg {
	return Msg{kind: MsgBooksLoaded, data: booksLoaded{title, empty, books, err}}
}

// bookAddedMsg is the constructor for [MsgBookAdded]
func bookAddedMsg(book models.Book, err error) Msg {
	return Msg{kind: MsgBookAdded, data: bookAdded{book, err}}
}

// booksRemovedMsg is the constructor for [MsgBooksRemoved]
func booksRemovedMsg(title string, books []models.Book, err error) Msg {
	return Msg{kind: MsgBooksRemoved, data: booksRemoved{title, books, err}}
}

// statsLoadedMsg is the constructor for [MsgStatsLoaded]
func statsLoadedMsg(stats models.Statistics, err error) Msg {
	return Msg{kind: MsgStatsLoaded, data: statsLoaded{stats, err}}
}
