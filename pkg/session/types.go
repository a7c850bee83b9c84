// Package session implements the smartnotes session controller.
//
// A Controller owns one State aggregate: the bearer token, the auth and book
// forms, the mirrored book collection and the viewed/edited book. User intents
// map to Controller methods; each method issues at most the API calls the
// intent needs and folds the results back into State through pure
// transitions. Failures are reported once through a Notifier and returned as
// *ActionError.
//
// A Controller is not safe for concurrent use; one goroutine drives it.
//
// Example usage:
//
//	ctrl := session.New(client, store, session.NotifierFunc(func(msg string) {
//	    fmt.Fprintln(os.Stderr, msg)
//	}), logger.Default())
//	if err := ctrl.Bootstrap(ctx); err != nil {
//	    return err
//	}
//	ctrl.SetCredentials(session.Credentials{Email: "ann@example.com", Password: "secret"})
//	if err := ctrl.Authenticate(ctx); err != nil {
//	    return err
//	}
//	fmt.Println(len(ctrl.State().Books))
package session

import (
	"context"

	"github.com/blessedav/FINALGO/pkg/api"
)

// Mode selects the auth endpoint.
type Mode int

const (
	// ModeLogin authenticates an existing account.
	ModeLogin Mode = iota

	// ModeRegister creates an account.
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Screen is the top-level view derived from State.
type Screen int

const (
	// ScreenAuth is shown while no token is held.
	ScreenAuth Screen = iota

	// ScreenCatalog is shown while a token is held.
	ScreenCatalog
)

func (s Screen) String() string {
	if s == ScreenCatalog {
		return "catalog"
	}
	return "auth"
}

// Draft holds book form values not yet submitted.
type Draft struct {
	Title       string
	Author      string
	Description string

	// Tags is the raw comma-separated tag text.
	Tags string
}

// Credentials holds auth form values. Username is used in register mode only.
type Credentials struct {
	Email    string
	Password string
	Username string
}

// State is the whole client session.
type State struct {
	// Token is the bearer credential; empty means unauthenticated.
	Token string

	Draft Draft
	Auth  Credentials
	Mode  Mode

	// Books mirrors the server as of the last fetch.
	Books []api.Book

	// Viewed is the detail panel, Editing the update target. Nil when unset.
	Viewed  *api.Book
	Editing *api.Book
}

// Screen reports which screen State renders.
func (s State) Screen() Screen {
	if s.Authenticated() {
		return ScreenCatalog
	}
	return ScreenAuth
}

// Authenticated reports whether a token is held.
func (s State) Authenticated() bool {
	return s.Token != ""
}

// Client is the subset of the Remote API the controller depends on.
// *api.Client implements it.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	ListBooks(ctx context.Context, token string) ([]api.Book, error)
	GetBook(ctx context.Context, token, id string) (api.Book, error)
	CreateBook(ctx context.Context, token string, in api.BookInput) (api.Book, error)
	UpdateBook(ctx context.Context, token, id string, in api.BookInput) (api.Book, error)
	DeleteBook(ctx context.Context, token, id string) error
}

// Notifier shows a message to the user and returns once it has been shown.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) {
	f(message)
}
