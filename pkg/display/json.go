package display

import (
	"encoding/json"
	"io"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/session"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

type authView struct {
	Screen   string `json:"screen"`
	Mode     string `json:"mode"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

type draftView struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

type catalogView struct {
	Screen  string     `json:"screen"`
	Form    string     `json:"form"`
	Editing string     `json:"editing,omitempty"`
	Draft   draftView  `json:"draft"`
	Books   []api.Book `json:"books"`
	Viewed  *api.Book  `json:"viewed,omitempty"`
}

// FormatAuthScreen implements Formatter.FormatAuthScreen.
func (f *jsonFormatter) FormatAuthScreen(w io.Writer, state session.State) error {
	view := authView{
		Screen: session.ScreenAuth.String(),
		Mode:   state.Mode.String(),
		Email:  state.Auth.Email,
	}
	if state.Mode == session.ModeRegister {
		view.Username = state.Auth.Username
	}
	return f.encode(w, view)
}

// FormatCatalog implements Formatter.FormatCatalog.
func (f *jsonFormatter) FormatCatalog(w io.Writer, state session.State) error {
	view := catalogView{
		Screen: session.ScreenCatalog.String(),
		Form:   "add",
		Draft: draftView{
			Title:       state.Draft.Title,
			Author:      state.Draft.Author,
			Description: state.Draft.Description,
			Tags:        state.Draft.Tags,
		},
		Books:  nonNil(state.Books),
		Viewed: state.Viewed,
	}
	if state.Editing != nil {
		view.Form = "edit"
		view.Editing = state.Editing.ID
	}
	return f.encode(w, view)
}

// FormatBooks implements Formatter.FormatBooks.
func (f *jsonFormatter) FormatBooks(w io.Writer, books []api.Book) error {
	return f.encode(w, nonNil(books))
}

// FormatBook implements Formatter.FormatBook.
func (f *jsonFormatter) FormatBook(w io.Writer, book api.Book) error {
	return f.encode(w, book)
}

func (f *jsonFormatter) encode(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(v)
}

func nonNil(books []api.Book) []api.Book {
	if books == nil {
		return []api.Book{}
	}
	return books
}
