package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/blessedav/FINALGO/pkg/session"
)

// New creates a new formatter based on configuration.
func New(cfg Config) Formatter {
	if cfg.Format == "" {
		cfg.Format = FormatTable
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatSimple:
		return &simpleFormatter{config: cfg}
	case FormatTable:
		fallthrough
	default:
		return &tableFormatter{config: cfg}
	}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatTable, FormatJSON, FormatSimple:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or simple)", name)
	}
}

// Render writes the screen matching state.
func Render(f Formatter, w io.Writer, state session.State) error {
	if state.Screen() == session.ScreenCatalog {
		return f.FormatCatalog(w, state)
	}
	return f.FormatAuthScreen(w, state)
}

func authTitle(m session.Mode) string {
	if m == session.ModeRegister {
		return "Register"
	}
	return "Login"
}

func authToggleHint(m session.Mode) string {
	if m == session.ModeRegister {
		return "Already have an account? Use toggle to log in."
	}
	return "No account? Use toggle to register."
}

// formLabel names the catalog form's submit action.
func formLabel(state session.State) string {
	if state.Editing != nil {
		return fmt.Sprintf("Save (editing %s)", state.Editing.ID)
	}
	return "Add book"
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func masked(s string) string {
	return strings.Repeat("*", len([]rune(s)))
}

// writeHeader writes a section header.
func writeHeader(w io.Writer, title string, compact bool) error {
	if compact {
		_, err := fmt.Fprintf(w, "%s\n", title)
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	return err
}
