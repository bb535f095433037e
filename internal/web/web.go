// Package web serves the catalog as server-rendered HTML forms.
//
// Routes
//
//	GET  /        all books
//	GET  /add     add form
//	POST /books   create a book from the add form
//	GET  /search  search by title or author (by, q, mode)
//	GET  /remove  title search listing selectable books
//	POST /remove  delete the selected ids
//	GET  /stats   totals and read percentage
//
// Every route is wrapped with request logging, rate limiting and panic recovery from [server].
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/server"
	"github.com/desertthunder/shelf/internal/shared"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{"list", "add", "search", "remove", "stats"}

// Options configures an [App].
type Options struct {
	Logger    *log.Logger
	MinYear   int
	RateLimit float64 // requests per second; zero disables limiting
	Burst     int
}

// App is the web front end. It holds no catalog state of its own.
type App struct {
	catalog *catalog.Catalog
	logger  *log.Logger
	minYear int
	pages   map[string]*template.Template
	router  server.Router
}

// bookForm echoes submitted values back into the add form.
type bookForm struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Read   bool
}

type page struct {
	Title      string
	Active     string
	Flash      string
	Errors     []string
	Books      []models.Book
	Stats      models.Statistics
	Form       bookForm
	MinYear    int
	Query      string
	By         string
	Mode       string
	Searched   bool
	Selectable bool
}

// New parses the embedded templates and registers every route.
func New(c *catalog.Catalog, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	app := &App{
		catalog: c,
		logger:  opts.Logger,
		minYear: opts.MinYear,
		pages:   pages,
		router:  server.NewBasicRouter(),
	}

	app.router.Use(
		server.Recover(opts.Logger),
		server.RequestLogger(opts.Logger),
		server.RateLimit(server.NewLimiter(opts.RateLimit, opts.Burst)),
	)

	app.router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(app.listBooks))
	app.router.Handle(http.MethodGet, "/add", http.HandlerFunc(app.addForm))
	app.router.Handle(http.MethodPost, "/books", http.HandlerFunc(app.createBook))
	app.router.Handle(http.MethodGet, "/search", http.HandlerFunc(app.searchBooks))
	app.router.Handle(http.MethodGet, "/remove", http.HandlerFunc(app.removeForm))
	app.router.Handle(http.MethodPost, "/remove", http.HandlerFunc(app.removeBooks))
	app.router.Handle(http.MethodGet, "/stats", http.HandlerFunc(app.stats))

	return app, nil
}

// ServeHTTP implements [http.Handler].
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.catalog.ListAllBooks(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	a.render(w, http.StatusOK, "list", page{Title: "All Books", Active: "list", Books: books})
}

func (a *App) addForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "add", page{Title: "Add New Book", Active: "add", MinYear: a.minYear})
}

func (a *App) createBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := bookForm{
		Title:  strings.TrimSpace(r.PostForm.Get("title")),
		Author: strings.TrimSpace(r.PostForm.Get("author")),
		Year:   strings.TrimSpace(r.PostForm.Get("year")),
		Genre:  strings.TrimSpace(r.PostForm.Get("genre")),
		Read:   r.PostForm.Get("read") != "",
	}
	data := page{Title: "Add New Book", Active: "add", MinYear: a.minYear, Form: form}

	year, problems := a.validate(form)
	if len(problems) > 0 {
		data.Errors = problems
		a.render(w, http.StatusUnprocessableEntity, "add", data)
		return
	}

	book, err := a.catalog.AddBook(r.Context(), form.Title, form.Author, year, form.Genre, form.Read)
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		data.Errors = []string{err.Error()}
		a.render(w, http.StatusUnprocessableEntity, "add", data)
		return
	case err != nil:
		a.fail(w, err)
		return
	}

	a.render(w, http.StatusCreated, "add", page{
		Title:   "Add New Book",
		Active:  "add",
		MinYear: a.minYear,
		Flash:   fmt.Sprintf("Book %q added successfully!", book.Title),
	})
}

// validate checks the add form the way the form fields demand and returns the parsed year.
func (a *App) validate(form bookForm) (int, []string) {
	var problems []string
	if form.Title == "" || form.Author == "" || form.Genre == "" {
		problems = append(problems, "Please fill in all required fields")
	}

	year, err := strconv.Atoi(form.Year)
	switch {
	case err != nil:
		problems = append(problems, "Year must be a number")
	case a.minYear > 0 && year < a.minYear:
		problems = append(problems, fmt.Sprintf("Year must be %d or later", a.minYear))
	}

	return year, problems
}

func (a *App) searchBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := page{
		Title:  "Search Books",
		Active: "search",
		Query:  q.Get("q"),
		By:     q.Get("by"),
		Mode:   q.Get("mode"),
	}

	if !q.Has("q") {
		a.render(w, http.StatusOK, "search", data)
		return
	}

	field, err := models.ParseField(data.By)
	if err != nil {
		data.Errors = []string{err.Error()}
		a.render(w, http.StatusBadRequest, "search", data)
		return
	}

	mode, err := models.ParseMatchMode(data.Mode)
	if err != nil {
		data.Errors = []string{err.Error()}
		a.render(w, http.StatusBadRequest, "search", data)
		return
	}

	books, err := a.catalog.SearchBooks(r.Context(), field, data.Query, mode)
	if err != nil {
		a.fail(w, err)
		return
	}

	data.Books = books
	data.Searched = true
	a.render(w, http.StatusOK, "search", data)
}

func (a *App) removeForm(w http.ResponseWriter, r *http.Request) {
	data := page{Title: "Remove Book", Active: "remove", Query: r.URL.Query().Get("q"), Selectable: true}

	if strings.TrimSpace(data.Query) == "" {
		a.render(w, http.StatusOK, "remove", data)
		return
	}

	books, err := a.catalog.SearchBooks(r.Context(), models.FieldTitle, data.Query, models.MatchSubstring)
	if err != nil {
		a.fail(w, err)
		return
	}

	data.Books = books
	data.Searched = true
	a.render(w, http.StatusOK, "remove", data)
}

func (a *App) removeBooks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := page{Title: "Remove Book", Active: "remove", Selectable: true}

	ids := make([]int64, 0, len(r.PostForm["id"]))
	for _, raw := range r.PostForm["id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			data.Errors = []string{fmt.Sprintf("Invalid book id %q", raw)}
			a.render(w, http.StatusBadRequest, "remove", data)
			return
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		data.Errors = []string{"Please select at least one book to delete"}
		a.render(w, http.StatusUnprocessableEntity, "remove", data)
		return
	}

	books, err := a.catalog.ListAllBooks(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	titles := make(map[int64]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}

	deleted, err := a.catalog.RemoveBooksByIDs(r.Context(), ids)
	if err != nil {
		a.fail(w, err)
		return
	}

	if len(deleted) == 0 {
		data.Errors = []string{"No books found"}
		a.render(w, http.StatusOK, "remove", data)
		return
	}

	names := make([]string, 0, len(deleted))
	for _, id := range deleted {
		names = append(names, titles[id])
	}
	data.Flash = "Deleted books: " + strings.Join(names, ", ")
	a.render(w, http.StatusOK, "remove", data)
}

func (a *App) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.catalog.GetStatistics(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	a.render(w, http.StatusOK, "stats", page{Title: "Library Statistics", Active: "stats", Stats: stats})
}

// render executes the page into a buffer first so a template error never leaves a partial response.
func (a *App) render(w http.ResponseWriter, status int, name string, data page) {
	var buf bytes.Buffer
	if err := a.pages[name].ExecuteTemplate(&buf, "base", data); err != nil {
		a.logger.Error("failed to render template", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (a *App) fail(w http.ResponseWriter, err error) {
	a.logger.Error("catalog operation failed", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
