package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/session"
)

func catalogState() session.State {
	return session.State{
		Token: "T",
		Books: []api.Book{
			{ID: "5", Title: "Dune", Author: "Frank Herbert", Tags: []string{"sf", "classic"}, Description: "Desert planet"},
			{ID: "7", Title: "Emma", Author: "Jane Austen"},
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
		want   string // Type name
	}{
		{
			name:   "default format (table)",
			config: Config{},
			want:   "*display.tableFormatter",
		},
		{
			name:   "table format",
			config: Config{Format: FormatTable},
			want:   "*display.tableFormatter",
		},
		{
			name:   "json format",
			config: Config{Format: FormatJSON},
			want:   "*display.jsonFormatter",
		},
		{
			name:   "simple format",
			config: Config{Format: FormatSimple},
			want:   "*display.simpleFormatter",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			formatter := New(tt.config)
			if formatter == nil {
				t.Fatal("New() returned nil")
			}

			got := fmt.Sprintf("%T", formatter)
			if got != tt.want {
				t.Errorf("New() type = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"table", "JSON", "Simple"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", name, err)
		}
	}

	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestTableFormatter_FormatAuthScreen(t *testing.T) {
	t.Parallel()

	formatter := New(Config{Format: FormatTable})

	var buf bytes.Buffer
	state := session.State{Auth: session.Credentials{Email: "ann@example.com", Password: "secret"}}
	if err := formatter.FormatAuthScreen(&buf, state); err != nil {
		t.Fatalf("FormatAuthScreen() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Login", "ann@example.com", "******", "toggle to register"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "secret") {
		t.Error("Output leaks the password")
	}
	if strings.Contains(output, "Username") {
		t.Error("Login screen should not ask for a username")
	}

	buf.Reset()
	state.Mode = session.ModeRegister
	state.Auth.Username = "ann"
	if err := formatter.FormatAuthScreen(&buf, state); err != nil {
		t.Fatalf("FormatAuthScreen() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Register") || !strings.Contains(buf.String(), "Username") {
		t.Errorf("Register screen incomplete:\n%s", buf.String())
	}
}

func TestTableFormatter_FormatCatalog(t *testing.T) {
	t.Parallel()

	formatter := New(Config{Format: FormatTable})
	state := catalogState()
	state.Viewed = &api.Book{ID: "7", Title: "Emma", Author: "Jane Austen", Description: "Matchmaking"}

	var buf bytes.Buffer
	if err := formatter.FormatCatalog(&buf, state); err != nil {
		t.Fatalf("FormatCatalog() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Form: Add book", "Dune", "sf, classic", "Jane Austen", "Matchmaking"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
}

func TestTableFormatter_EditMode(t *testing.T) {
	t.Parallel()

	formatter := New(Config{Format: FormatTable, Compact: true})
	state := catalogState()
	state.Editing = &state.Books[0]
	state.Draft = session.Draft{Title: "Dune", Tags: "sf, classic"}

	var buf bytes.Buffer
	if err := formatter.FormatCatalog(&buf, state); err != nil {
		t.Fatalf("FormatCatalog() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Save (editing 5)") {
		t.Errorf("Output missing edit label:\n%s", output)
	}
	if !strings.Contains(output, `tags="sf, classic"`) {
		t.Errorf("Output missing draft:\n%s", output)
	}
	if strings.Contains(output, "-----") {
		t.Error("Compact output should not contain separators")
	}
}

func TestTableFormatter_EmptyCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(Config{}).FormatBooks(&buf, nil); err != nil {
		t.Fatalf("FormatBooks() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No books") {
		t.Errorf("Output = %q, want No books", buf.String())
	}
}

func TestJSONFormatter_FormatCatalog(t *testing.T) {
	t.Parallel()

	formatter := New(Config{Format: FormatJSON})
	state := catalogState()
	state.Editing = &state.Books[1]

	var buf bytes.Buffer
	if err := formatter.FormatCatalog(&buf, state); err != nil {
		t.Fatalf("FormatCatalog() error = %v", err)
	}

	var view struct {
		Screen  string     `json:"screen"`
		Form    string     `json:"form"`
		Editing string     `json:"editing"`
		Books   []api.Book `json:"books"`
		Viewed  *api.Book  `json:"viewed"`
	}
	if err := json.Unmarshal(buf.Bytes(), &view); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if view.Screen != "catalog" || view.Form != "edit" || view.Editing != "7" {
		t.Errorf("view = %+v", view)
	}
	if len(view.Books) != 2 || view.Books[0].Tags[1] != "classic" {
		t.Errorf("Books = %+v", view.Books)
	}
	if view.Viewed != nil {
		t.Errorf("Viewed = %+v, want nil", view.Viewed)
	}
}

func TestJSONFormatter_EmptyListIsArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(Config{Format: FormatJSON, Compact: true}).FormatBooks(&buf, nil); err != nil {
		t.Fatalf("FormatBooks() error = %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("Output = %q, want []", got)
	}
}

func TestJSONFormatter_AuthScreenOmitsPassword(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	state := session.State{Auth: session.Credentials{Email: "ann@example.com", Password: "secret"}}
	if err := New(Config{Format: FormatJSON}).FormatAuthScreen(&buf, state); err != nil {
		t.Fatalf("FormatAuthScreen() error = %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "secret") {
		t.Error("Output leaks the password")
	}
	if !strings.Contains(output, `"mode": "login"`) {
		t.Errorf("Output missing mode:\n%s", output)
	}
}

func TestSimpleFormatter(t *testing.T) {
	t.Parallel()

	formatter := New(Config{Format: FormatSimple})
	state := catalogState()
	state.Viewed = &state.Books[0]

	var buf bytes.Buffer
	if err := formatter.FormatCatalog(&buf, state); err != nil {
		t.Fatalf("FormatCatalog() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Books: 2 | Form: Add book" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "5: Dune - Frank Herbert [sf, classic]" {
		t.Errorf("lines[1] = %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "Viewing: 5: Dune") {
		t.Errorf("lines[3] = %q", lines[3])
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	formatter := New(Config{Format: FormatSimple})

	var buf bytes.Buffer
	if err := Render(formatter, &buf, session.State{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Login") {
		t.Errorf("unauthenticated render = %q", buf.String())
	}

	buf.Reset()
	if err := Render(formatter, &buf, catalogState()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Books: 2") {
		t.Errorf("authenticated render = %q", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer description", 10, "a longe..."},
		{"книга о пустыне", 8, "книга..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
