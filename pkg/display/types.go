// Package display renders smartnotes screens.
//
// It supports multiple output formats (table, JSON, simple text) for the
// auth screen, the catalog screen, book lists and single books.
package display

import (
	"io"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/session"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays books in an aligned table.
	FormatTable Format = "table"

	// FormatJSON displays screens as JSON documents.
	FormatJSON Format = "json"

	// FormatSimple displays one line per book.
	FormatSimple Format = "simple"
)

// Formatter renders session screens.
type Formatter interface {
	// FormatAuthScreen renders the login/register form. The password is
	// never shown.
	FormatAuthScreen(w io.Writer, state session.State) error

	// FormatCatalog renders the form mode, the book list and, when set,
	// the viewed book.
	FormatCatalog(w io.Writer, state session.State) error

	// FormatBooks renders a book list.
	FormatBooks(w io.Writer, books []api.Book) error

	// FormatBook renders a single book.
	FormatBook(w io.Writer, book api.Book) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// Compact enables compact output (less whitespace).
	// Default: false.
	Compact bool
}
