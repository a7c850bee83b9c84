package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/session"
)

const descriptionWidth = 40

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatAuthScreen implements Formatter.FormatAuthScreen.
func (f *tableFormatter) FormatAuthScreen(w io.Writer, state session.State) error {
	if err := writeHeader(w, authTitle(state.Mode), f.config.Compact); err != nil {
		return err
	}

	rows := make([][]string, 0, 3)
	if state.Mode == session.ModeRegister {
		rows = append(rows, []string{"Username", state.Auth.Username})
	}
	rows = append(rows,
		[]string{"Email", state.Auth.Email},
		[]string{"Password", masked(state.Auth.Password)},
	)

	if err := f.writeTable(w, []string{"Field", "Value"}, rows); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, authToggleHint(state.Mode))
	return err
}

// FormatCatalog implements Formatter.FormatCatalog.
func (f *tableFormatter) FormatCatalog(w io.Writer, state session.State) error {
	if err := writeHeader(w, "Books", f.config.Compact); err != nil {
		return err
	}

	if err := f.writeDraft(w, state); err != nil {
		return err
	}

	if err := f.writeBooks(w, state.Books); err != nil {
		return err
	}

	if state.Viewed != nil {
		return f.FormatBook(w, *state.Viewed)
	}
	return nil
}

// FormatBooks implements Formatter.FormatBooks.
func (f *tableFormatter) FormatBooks(w io.Writer, books []api.Book) error {
	return f.writeBooks(w, books)
}

// FormatBook implements Formatter.FormatBook.
func (f *tableFormatter) FormatBook(w io.Writer, book api.Book) error {
	if err := writeHeader(w, book.Title, f.config.Compact); err != nil {
		return err
	}

	rows := [][]string{
		{"ID", book.ID},
		{"Author", book.Author},
		{"Description", book.Description},
		{"Tags", session.JoinTags(book.Tags)},
	}

	return f.writeTable(w, []string{"Field", "Value"}, rows)
}

func (f *tableFormatter) writeDraft(w io.Writer, state session.State) error {
	d := state.Draft
	if _, err := fmt.Fprintf(w, "Form: %s\n", formLabel(state)); err != nil {
		return err
	}

	if d == (session.Draft{}) {
		return nil
	}

	_, err := fmt.Fprintf(w, "  title=%q author=%q description=%q tags=%q\n",
		d.Title, d.Author, d.Description, d.Tags)
	return err
}

func (f *tableFormatter) writeBooks(w io.Writer, books []api.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books")
		return err
	}

	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = []string{
			b.ID,
			b.Title,
			b.Author,
			session.JoinTags(b.Tags),
			truncate(b.Description, descriptionWidth),
		}
	}

	return f.writeTable(w, []string{"ID", "Title", "Author", "Tags", "Description"}, rows)
}

// writeTable writes a formatted table.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	if err := f.writeRow(w, header, widths); err != nil {
		return err
	}

	if !f.config.Compact {
		separator := make([]string, len(header))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if err := f.writeRow(w, separator, widths); err != nil {
			return err
		}
	}

	for _, row := range rows {
		if err := f.writeRow(w, row, widths); err != nil {
			return err
		}
	}

	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}

	return nil
}

// writeRow writes a single table row without trailing padding.
func (f *tableFormatter) writeRow(w io.Writer, cells []string, widths []int) error {
	gap := "  "
	if f.config.Compact {
		gap = " "
	}

	var line strings.Builder
	for i, cell := range cells {
		if i > 0 {
			line.WriteString(gap)
		}
		line.WriteString(cell)
		if i < len(cells)-1 {
			line.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))))
		}
	}

	_, err := fmt.Fprintln(w, line.String())
	return err
}
