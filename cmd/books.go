package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// AddBook records a new book from the command flags.
func (r *Runner) AddBook(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		book, err := c.AddBook(ctx, cmd.String("title"), cmd.String("author"), int(cmd.Int("year")), cmd.String("genre"), cmd.Bool("read"))
		if err != nil {
			return err
		}

		if err := r.writePlain("Book added successfully!\n"); err != nil {
			return err
		}
		return r.writePlain("%s\n", formatter.FormatBookLine(int(book.ID), book))
	})
}

// RemoveBooks deletes by exact title or by a list of ids; exactly one of --title and --id is required.
func (r *Runner) RemoveBooks(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.String("title"))
	ids := cmd.Int64Slice("id")

	switch {
	case title == "" && len(ids) == 0:
		return fmt.Errorf("%w: one of --title or --id is required", shared.ErrMissingArgument)
	case title != "" && len(ids) > 0:
		return fmt.Errorf("%w: cannot specify both --title and --id", shared.ErrInvalidArgument)
	}

	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		if title != "" {
			removed, err := c.RemoveBookByTitle(ctx, title)
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				return r.writePlain("No books found with title %q\n", title)
			}
			if err := r.writePlain("Deleted %d book(s):\n", len(removed)); err != nil {
				return err
			}
			return r.writeBooks(removed)
		}

		deleted, err := c.RemoveBooksByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(deleted) == 0 {
			return r.writePlain("No books found\n")
		}
		return r.writePlain("Deleted book ids: %s\n", joinIDs(deleted))
	})
}

// SearchBooks prints the books whose title or author matches the query argument.
func (r *Runner) SearchBooks(ctx context.Context, cmd *cli.Command) error {
	field, err := models.ParseField(cmd.String("by"))
	if err != nil {
		return err
	}

	mode := models.MatchSubstring
	if cmd.Bool("exact") {
		mode = models.MatchExact
	}

	query := cmd.StringArg("query")

	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		books, err := c.SearchBooks(ctx, field, query, mode)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(books, cmd.Bool("pretty"))
		}
		if len(books) == 0 {
			return r.writePlain("No books found\n")
		}
		return r.writeBooks(books)
	})
}

// ListBooks prints every book in insertion order.
func (r *Runner) ListBooks(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		books, err := c.ListAllBooks(ctx)
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(books, cmd.Bool("pretty"))
		}
		if len(books) == 0 {
			return r.writePlain("Your library is empty\n")
		}
		return r.writeBooks(books)
	})
}

// Stats prints the total number of books and the percentage read.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		stats, err := c.GetStatistics(ctx)
		if err != nil {
			return err
		}

		if err := r.writePlainHeader("Library Statistics"); err != nil {
			return err
		}
		return r.writePlain("%s", formatter.FormatStatistics(stats))
	})
}

// Export renders the catalog to --output, or to standard output when no path is given.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		data, err := c.ExportBooks(ctx, format)
		if err != nil {
			return err
		}

		path := cmd.String("output")
		if path == "" {
			return r.writePlain("%s", data)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		r.logger.Info("catalog exported", "format", format, "path", path)
		return r.writePlain("Exported catalog to %s\n", path)
	})
}

// writeBooks prints books as numbered console lines.
func (r *Runner) writeBooks(books []models.Book) error {
	for i, book := range books {
		if err := r.writePlain("%s\n", formatter.FormatBookLine(i+1, book)); err != nil {
			return err
		}
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
