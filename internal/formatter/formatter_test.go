package formatter

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

var testBooks = []models.Book{
	{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925, Genre: "Classic", Read: true},
	{ID: 2, Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction"},
	{ID: 5, Title: "Either|Or", Author: "Søren Kierkegaard", Year: 1843, Genre: "Philosophy, Essays"},
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "CSV", want: FormatCSV},
		{input: "md", want: FormatMarkdown},
		{input: "markdown", want: FormatMarkdown},
		{input: "txt", want: FormatText},
		{input: "pdf", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("headers and rows", func(t *testing.T) {
		data, err := ExportToCSV(testBooks)
		if err != nil {
			t.Fatalf("ExportToCSV() error = %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse CSV output: %v", err)
		}

		if len(records) != len(testBooks)+1 {
			t.Fatalf("expected %d records, got %d", len(testBooks)+1, len(records))
		}

		wantHeaders := []string{"ID", "Title", "Author", "Year", "Genre", "Read"}
		for i, h := range wantHeaders {
			if records[0][i] != h {
				t.Errorf("header %d = %s, want %s", i, records[0][i], h)
			}
		}

		if records[1][1] != "The Great Gatsby" || records[1][5] != "true" {
			t.Errorf("unexpected first row: %v", records[1])
		}
		if records[3][0] != "5" || records[3][4] != "Philosophy, Essays" {
			t.Errorf("unexpected third row: %v", records[3])
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV() error = %v", err)
		}
		if strings.TrimSpace(string(data)) != "ID,Title,Author,Year,Genre,Read" {
			t.Errorf("expected only headers, got %q", data)
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	stats := models.NewStatistics(3, 1)

	t.Run("table", func(t *testing.T) {
		data, err := ExportToMarkdown(testBooks, stats)
		if err != nil {
			t.Fatalf("ExportToMarkdown() error = %v", err)
		}
		out := string(data)

		for _, want := range []string{
			"# Library",
			"**Total books**: 3",
			"**Percentage read**: 33.3%",
			"| 1 | The Great Gatsby | F. Scott Fitzgerald | 1925 | Classic | Read |",
			"| 2 | Dune | Frank Herbert | 1965 | Science Fiction | Unread |",
			`Either\|Or`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown missing %q\n%s", want, out)
			}
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		data, _ := ExportToMarkdown(nil, models.NewStatistics(0, 0))
		if !strings.Contains(string(data), "empty") {
			t.Errorf("expected empty notice, got %q", data)
		}
		if strings.Contains(string(data), "| # |") {
			t.Error("empty catalog should not render a table")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testBooks[:2], models.NewStatistics(2, 1))
	if err != nil {
		t.Fatalf("ExportToText() error = %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"1. Name: The Great Gatsby by F. Scott Fitzgerald (1925) - (Classic) - (Read)",
		"2. Name: Dune by Frank Herbert (1965) - (Science Fiction) - (Unread)",
		"Total books: 2",
		"Percentage read: 50.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text missing %q\n%s", want, out)
		}
	}

	empty, _ := ExportToText(nil, models.NewStatistics(0, 0))
	if !strings.Contains(string(empty), "Your library is empty.") || !strings.Contains(string(empty), "Percentage read: 0.0%") {
		t.Errorf("unexpected empty output: %q", empty)
	}
}

func TestExport(t *testing.T) {
	stats := models.NewStatistics(3, 1)

	for _, f := range []Format{FormatCSV, FormatMarkdown, FormatText} {
		if _, err := Export(f, testBooks, stats); err != nil {
			t.Errorf("Export(%s) error = %v", f, err)
		}
	}

	if _, err := Export(Format("pdf"), testBooks, stats); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFormatStatistics(t *testing.T) {
	got := FormatStatistics(models.NewStatistics(3, 1))
	want := "Total books: 3\nPercentage read: 33.3%\n"
	if got != want {
		t.Errorf("FormatStatistics() = %q, want %q", got, want)
	}
}
