package display

import (
	"fmt"
	"io"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/session"
)

// simpleFormatter formats output as simple text.
type simpleFormatter struct {
	config Config
}

// FormatAuthScreen implements Formatter.FormatAuthScreen.
func (f *simpleFormatter) FormatAuthScreen(w io.Writer, state session.State) error {
	_, err := fmt.Fprintf(w, "%s | email: %s | %s\n",
		authTitle(state.Mode),
		state.Auth.Email,
		authToggleHint(state.Mode))
	return err
}

// FormatCatalog implements Formatter.FormatCatalog.
func (f *simpleFormatter) FormatCatalog(w io.Writer, state session.State) error {
	if _, err := fmt.Fprintf(w, "Books: %d | Form: %s\n", len(state.Books), formLabel(state)); err != nil {
		return err
	}

	if err := f.FormatBooks(w, state.Books); err != nil {
		return err
	}

	if state.Viewed != nil {
		if _, err := fmt.Fprint(w, "Viewing: "); err != nil {
			return err
		}
		return f.FormatBook(w, *state.Viewed)
	}
	return nil
}

// FormatBooks implements Formatter.FormatBooks.
func (f *simpleFormatter) FormatBooks(w io.Writer, books []api.Book) error {
	for _, b := range books {
		if _, err := fmt.Fprintf(w, "%s: %s - %s [%s]\n",
			b.ID,
			b.Title,
			b.Author,
			session.JoinTags(b.Tags)); err != nil {
			return err
		}
	}

	return nil
}

// FormatBook implements Formatter.FormatBook.
func (f *simpleFormatter) FormatBook(w io.Writer, book api.Book) error {
	_, err := fmt.Fprintf(w, "%s: %s - %s [%s] %s\n",
		book.ID,
		book.Title,
		book.Author,
		session.JoinTags(book.Tags),
		book.Description)
	return err
}
