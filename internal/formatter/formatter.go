// package formatter renders book listings for the console and exports the catalog to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat converts user input into a [Format]. Empty input selects [FormatText].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Export renders books in the given format.
func Export(format Format, books []models.Book, stats models.Statistics) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(books)
	case FormatMarkdown:
		return ExportToMarkdown(books, stats)
	case FormatText:
		return ExportToText(books, stats)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToCSV converts books to CSV with columns: ID, Title, Author, Year, Genre, Read
func ExportToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "Year", "Genre", "Read"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, book := range books {
		record := []string{
			strconv.FormatInt(book.ID, 10),
			book.Title,
			book.Author,
			strconv.Itoa(book.Year),
			book.Genre,
			strconv.FormatBool(book.Read),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts books to a Markdown table headed by the catalog statistics
func ExportToMarkdown(books []models.Book, stats models.Statistics) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Library\n\n")
	buf.WriteString(fmt.Sprintf("**Total books**: %d\n", stats.Total))
	buf.WriteString(fmt.Sprintf("**Percentage read**: %.1f%%\n\n", stats.PercentRead))

	if len(books) == 0 {
		buf.WriteString("_Your library is empty._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Title | Author | Year | Genre | Status |\n")
	buf.WriteString("|---|-------|--------|------|-------|--------|\n")
	for i, book := range books {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %s | %s |\n",
			i+1,
			escapeCell(book.Title),
			escapeCell(book.Author),
			book.Year,
			escapeCell(book.Genre),
			shared.ReadStatus(book.Read),
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts books to the numbered plain text listing the console prints
func ExportToText(books []models.Book, stats models.Statistics) ([]byte, error) {
	var buf bytes.Buffer

	if len(books) == 0 {
		buf.WriteString("Your library is empty.\n")
	} else {
		buf.WriteString("Your Library:\n\n")
		for i, book := range books {
			buf.WriteString(FormatBookLine(i+1, book))
			buf.WriteString("\n")
		}
	}

	buf.WriteString("\n")
	buf.WriteString(FormatStatistics(stats))
	return buf.Bytes(), nil
}

// FormatBookLine renders one numbered listing line, e.g.
//
//	1. Name: Dune by Frank Herbert (1965) - (Science Fiction) - (Unread)
func FormatBookLine(n int, book models.Book) string {
	return fmt.Sprintf("%d. Name: %s by %s (%d) - (%s) - (%s)",
		n, book.Title, book.Author, book.Year, book.Genre, shared.ReadStatus(book.Read))
}

// FormatStatistics renders the total and read percentage on two lines.
func FormatStatistics(stats models.Statistics) string {
	return fmt.Sprintf("Total books: %d\nPercentage read: %.1f%%\n", stats.Total, stats.PercentRead)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
