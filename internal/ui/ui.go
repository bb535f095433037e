package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	FormView
	BooksView
	MessageView
)

type action int

const (
	actionAdd action = iota
	actionRemove
	actionSearch
	actionList
	actionStats
	actionExit
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	catalog *catalog.Catalog
	view    ViewState
	action  action
	width   int
	height  int
	menu    list.Model
	books   list.Model
	inputs  []textinput.Model
	focus   int
	formErr string
	message string
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over the catalog.
func NewModel(ctx context.Context, c *catalog.Catalog) *Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), defaultWidth-4, defaultHeight-8)
	menu.Title = "Library Manager"
	menu.SetFilteringEnabled(false)
	menu.SetShowStatusBar(false)
	menu.SetShowHelp(false)
	menu.DisableQuitKeybindings()

	books := list.New(nil, list.NewDefaultDelegate(), defaultWidth-4, defaultHeight-8)
	books.DisableQuitKeybindings()

	return &Model{
		ctx:     ctx,
		catalog: c,
		view:    MenuView,
		width:   defaultWidth,
		height:  defaultHeight,
		menu:    menu,
		books:   books,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init has nothing to load; the menu is static.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		m.books.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case BooksView:
			return m.handleBooksKeys(msg)
		case MessageView:
			return m.handleMessageKeys(msg)
		}

	case Msg:
		return m.handleResult(msg)
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.menu.View(), helpView)
	case FormView:
		return m.renderForm()
	case BooksView:
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.books.View(), helpView)
	case MessageView:
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.message, helpView)
	default:
		return ""
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.menu.SelectedItem().(menuItem); ok {
			return m.start(item.action)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// handleFormKeys forwards typing to the focused input. q is text here, so only ctrl+c quits.
func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.inputs = nil
		m.view = MenuView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if m.focus < len(m.inputs)-1 {
			return m, m.focusInput(m.focus + 1)
		}
		return m, m.submit()
	case key.Matches(msg, m.keys.next):
		return m, m.focusInput((m.focus + 1) % len(m.inputs))
	case key.Matches(msg, m.keys.prev):
		return m, m.focusInput((m.focus - 1 + len(m.inputs)) % len(m.inputs))
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleBooksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.books.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			if m.books.FilterState() == list.FilterApplied {
				m.books.ResetFilter()
				return m, nil
			}
			m.view = MenuView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.books, cmd = m.books.Update(msg)
	return m, cmd
}

func (m *Model) handleMessageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back, m.keys.enter):
		m.message = ""
		m.view = MenuView
	}
	return m, nil
}

func (m *Model) handleResult(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBooksLoaded:
		data := msg.data.(booksLoaded)
		m.inputs = nil
		if data.err != nil {
			return m.showError(data.err)
		}
		if len(data.books) == 0 {
			return m.showMessage(styles.warn, data.empty)
		}

		items := make([]list.Item, len(data.books))
		for i, book := range data.books {
			items[i] = bookItem{book: book}
		}
		m.books.ResetFilter()
		cmd := m.books.SetItems(items)
		m.books.Title = data.title
		m.view = BooksView
		return m, cmd

	case MsgBookAdded:
		data := msg.data.(bookAdded)
		if errors.Is(data.err, shared.ErrInvalidInput) {
			m.formErr = data.err.Error()
			return m, nil
		}
		m.inputs = nil
		if data.err != nil {
			return m.showError(data.err)
		}
		return m.showMessage(styles.ok, "Book added successfully!\n\n"+formatter.FormatBookLine(int(data.book.ID), data.book))

	case MsgBooksRemoved:
		data := msg.data.(booksRemoved)
		m.inputs = nil
		if data.err != nil {
			return m.showError(data.err)
		}
		if len(data.books) == 0 {
			return m.showMessage(styles.warn, fmt.Sprintf("No books found with title %q", data.title))
		}
		return m.showMessage(styles.ok, fmt.Sprintf("Deleted %d book(s) titled %q", len(data.books), data.books[0].Title))

	case MsgStatsLoaded:
		data := msg.data.(statsLoaded)
		if data.err != nil {
			return m.showError(data.err)
		}
		return m.showMessage(lipgloss.NewStyle(), styles.title.Render("Library Statistics")+"\n"+formatter.FormatStatistics(data.stats))
	}

	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case MenuView:
		m.menu, cmd = m.menu.Update(msg)
	case BooksView:
		m.books, cmd = m.books.Update(msg)
	case FormView:
		if len(m.inputs) > 0 {
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		}
	}
	return m, cmd
}

// start opens the view for a menu action, or runs it directly when it needs no input.
func (m *Model) start(a action) (tea.Model, tea.Cmd) {
	m.action = a
	m.formErr = ""

	switch a {
	case actionAdd:
		return m, m.openForm("Title", "Author", "Year", "Genre", "Read (y/n)")
	case actionRemove:
		return m, m.openForm("Title")
	case actionSearch:
		return m, m.openForm("Search by (title/author)", "Search term")
	case actionList:
		return m, m.listBooks()
	case actionStats:
		return m, m.loadStats()
	default:
		return m, tea.Quit
	}
}

func (m *Model) openForm(labels ...string) tea.Cmd {
	m.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = styles.label.Render(label + ": ")
		m.inputs[i] = in
	}
	m.focus = 0
	m.view = FormView
	return m.inputs[0].Focus()
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// submit validates what the form can check locally and returns the catalog command to run.
func (m *Model) submit() tea.Cmd {
	m.formErr = ""
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}

	switch m.action {
	case actionAdd:
		year, err := strconv.Atoi(values[2])
		if err != nil {
			m.formErr = "Year must be a number"
			return nil
		}
		read := strings.HasPrefix(strings.ToLower(values[4]), "y")
		return m.addBook(values[0], values[1], year, values[3], read)
	case actionRemove:
		return m.removeBook(values[0])
	case actionSearch:
		field, err := models.ParseField(values[0])
		if err != nil {
			m.formErr = "Search by title or author"
			return nil
		}
		return m.searchBooks(field, values[1])
	}
	return nil
}

func (m *Model) addBook(title, author string, year int, genre string, read bool) tea.Cmd {
	return func() tea.Msg {
		book, err := m.catalog.AddBook(m.ctx, title, author, year, genre, read)
		return bookAddedMsg(book, err)
	}
}

func (m *Model) removeBook(title string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.catalog.RemoveBookByTitle(m.ctx, title)
		return booksRemovedMsg(title, removed, err)
	}
}

func (m *Model) searchBooks(field models.Field, query string) tea.Cmd {
	return func() tea.Msg {
		books, err := m.catalog.SearchBooks(m.ctx, field, query, models.MatchSubstring)
		return booksLoadedMsg(fmt.Sprintf("Books matching %q by %s", query, field), "No books found", books, err)
	}
}

func (m *Model) listBooks() tea.Cmd {
	return func() tea.Msg {
		books, err := m.catalog.ListAllBooks(m.ctx)
		return booksLoadedMsg("All Books", "Your library is empty", books, err)
	}
}

func (m *Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.catalog.GetStatistics(m.ctx)
		return statsLoadedMsg(stats, err)
	}
}

func (m *Model) showMessage(style lipgloss.Style, text string) (tea.Model, tea.Cmd) {
	m.message = style.Render(text)
	m.view = MessageView
	return m, nil
}

func (m *Model) showError(err error) (tea.Model, tea.Cmd) {
	return m.showMessage(styles.err, fmt.Sprintf("Error: %v", err))
}

func (m *Model) renderForm() string {
	var title string
	switch m.action {
	case actionAdd:
		title = "Add New Book"
	case actionRemove:
		title = "Remove Book"
	case actionSearch:
		title = "Search Books"
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(m.formErr))
		b.WriteString("\n")
	}

	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit"))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{submit, m.keys.next, m.keys.back}))
	return b.String()
}
