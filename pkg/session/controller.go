package session

import (
	"context"
	"fmt"

	"github.com/blessedav/FINALGO/pkg/api"
	"github.com/blessedav/FINALGO/pkg/logger"
	"github.com/blessedav/FINALGO/pkg/tokenstore"
)

// Operation names used in ActionError.Op and log fields.
const (
	OpAuthenticate = "authenticate"
	OpListBooks    = "list books"
	OpGetBook      = "get book"
	OpCreateBook   = "create book"
	OpUpdateBook   = "update book"
	OpDeleteBook   = "delete book"
	OpLogout       = "logout"
)

// message pairs the server-error fallback with the network failure text.
type message struct {
	fallback string
	network  string
}

var messages = map[string]message{
	OpAuthenticate: {"Auth error", "Network error during authentication"},
	OpListBooks:    {"Failed to fetch books", "Network error while fetching books"},
	OpGetBook:      {"Failed to fetch book", "Network error while fetching book"},
	OpCreateBook:   {"Failed to create book", "Network error while creating book"},
	OpUpdateBook:   {"Failed to update book", "Network error while updating book"},
	OpDeleteBook:   {"Failed to delete book", "Network error while deleting book"},
}

// Controller drives one session.
type Controller struct {
	client   Client
	store    tokenstore.Store
	notifier Notifier
	logger   logger.Logger

	state State
}

// New creates a controller with an empty, unauthenticated session.
// Call Hydrate or Bootstrap to restore a stored token.
func New(client Client, store tokenstore.Store, notifier Notifier, log logger.Logger) *Controller {
	return &Controller{
		client:   client,
		store:    store,
		notifier: notifier,
		logger:   log.With("component", "session"),
	}
}

// State returns a copy of the current session.
func (c *Controller) State() State {
	return c.state.clone()
}

// FindBook looks id up in the local collection.
func (c *Controller) FindBook(id string) (api.Book, bool) {
	for _, b := range c.state.Books {
		if b.ID == id {
			return *copyBook(b), true
		}
	}
	return api.Book{}, false
}

// Hydrate restores the token from durable storage without calling the API.
func (c *Controller) Hydrate(ctx context.Context) error {
	token, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}

	c.state = c.state.withToken(token)
	c.logger.Debug("session hydrated", "authenticated", token != "")
	return nil
}

// Bootstrap hydrates the token and, when one is stored, fetches the books.
//
// A rejected token is not discarded: the failure is reported and the catalog
// stays empty. Only a storage failure is returned.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if err := c.Hydrate(ctx); err != nil {
		return err
	}

	if c.state.Authenticated() {
		if err := c.ListBooks(ctx); err != nil {
			c.logger.Info("bootstrap list failed", "error", err)
		}
	}
	return nil
}

// SetMode selects login or register.
func (c *Controller) SetMode(m Mode) {
	c.state = c.state.withMode(m)
}

// ToggleMode switches between login and register.
func (c *Controller) ToggleMode() {
	c.state = c.state.toggledMode()
}

// SetCredentials replaces the auth form.
func (c *Controller) SetCredentials(cred Credentials) {
	c.state = c.state.withCredentials(cred)
}

// SetDraft replaces the book form.
func (c *Controller) SetDraft(d Draft) {
	c.state = c.state.withDraft(d)
}

// Authenticate submits the auth form to the endpoint selected by Mode.
//
// On success the token is persisted, kept and the books are fetched once; a
// failing fetch is reported on its own and does not fail Authenticate. On
// failure, including a token that cannot be saved, the session is unchanged.
func (c *Controller) Authenticate(ctx context.Context) error {
	cred := c.state.Auth
	if cred.Email == "" || cred.Password == "" || (c.state.Mode == ModeRegister && cred.Username == "") {
		msg := "Email and password are required"
		if c.state.Mode == ModeRegister {
			msg = "Username, email and password are required"
		}
		return c.reject(OpAuthenticate, msg, ErrMissingCredentials)
	}

	var (
		token string
		err   error
	)
	if c.state.Mode == ModeRegister {
		token, err = c.client.Register(ctx, cred.Username, cred.Email, cred.Password)
	} else {
		token, err = c.client.Login(ctx, cred.Email, cred.Password)
	}
	if err != nil {
		return c.fail(OpAuthenticate, err)
	}

	// A token that cannot be persisted is not adopted.
	if err := c.store.Save(ctx, token); err != nil {
		c.logger.Error("failed to persist token", "error", err)
		return c.reject(OpAuthenticate, "Failed to save token", err)
	}

	c.state = c.state.withToken(token)
	c.logger.Info("authenticated", "mode", c.state.Mode.String())

	if err := c.ListBooks(ctx); err != nil {
		c.logger.Debug("list after authenticate failed", "error", err)
	}
	return nil
}

// ListBooks replaces the local collection with the server's.
//
// A rejected request empties the collection. A network failure leaves it as is.
func (c *Controller) ListBooks(ctx context.Context) error {
	if err := c.requireToken(OpListBooks); err != nil {
		return err
	}

	books, err := c.client.ListBooks(ctx, c.state.Token)
	if err != nil {
		if !api.IsNetwork(err) {
			c.state = c.state.withBooks([]api.Book{})
		}
		return c.fail(OpListBooks, err)
	}

	c.state = c.state.withBooks(books)
	c.logger.Debug("books fetched", "count", len(books))
	return nil
}

// CreateBook stores d as the draft and submits it as a new book.
//
// Success clears the draft and refetches the collection; failure keeps the
// draft for resubmission.
func (c *Controller) CreateBook(ctx context.Context, d Draft) error {
	c.state = c.state.withDraft(d)

	if err := c.requireToken(OpCreateBook); err != nil {
		return err
	}
	if d.Title == "" {
		return c.reject(OpCreateBook, "Title is required", ErrMissingTitle)
	}

	book, err := c.client.CreateBook(ctx, c.state.Token, bookInput(d))
	if err != nil {
		return c.fail(OpCreateBook, err)
	}

	c.logger.Info("book created", "id", book.ID)
	c.state = c.state.withDraft(Draft{})
	c.refetch(ctx)
	return nil
}

// UpdateBook stores d as the draft and submits it for the book with id.
//
// Success leaves edit mode, clears the draft and refetches the collection;
// failure keeps the edit state.
func (c *Controller) UpdateBook(ctx context.Context, id string, d Draft) error {
	c.state = c.state.withDraft(d)

	if err := c.requireToken(OpUpdateBook); err != nil {
		return err
	}
	if d.Title == "" {
		return c.reject(OpUpdateBook, "Title is required", ErrMissingTitle)
	}

	if _, err := c.client.UpdateBook(ctx, c.state.Token, id, bookInput(d)); err != nil {
		return c.fail(OpUpdateBook, err)
	}

	c.logger.Info("book updated", "id", id)
	c.state = c.state.canceledEdit()
	c.refetch(ctx)
	return nil
}

// Submit sends the current draft: an update while editing, a create otherwise.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state.Editing != nil {
		return c.UpdateBook(ctx, c.state.Editing.ID, c.state.Draft)
	}
	return c.CreateBook(ctx, c.state.Draft)
}

// DeleteBook deletes the book with id and drops it from the local collection
// without refetching.
func (c *Controller) DeleteBook(ctx context.Context, id string) error {
	if err := c.requireToken(OpDeleteBook); err != nil {
		return err
	}

	if err := c.client.DeleteBook(ctx, c.state.Token, id); err != nil {
		return c.fail(OpDeleteBook, err)
	}

	c.logger.Info("book deleted", "id", id)
	c.state = c.state.withoutBook(id)
	return nil
}

// ViewBook fetches the book with id into the detail panel.
func (c *Controller) ViewBook(ctx context.Context, id string) error {
	if err := c.requireToken(OpGetBook); err != nil {
		return err
	}

	book, err := c.client.GetBook(ctx, c.state.Token, id)
	if err != nil {
		return c.fail(OpGetBook, err)
	}

	c.state = c.state.viewing(book)
	return nil
}

// CloseView clears the detail panel.
func (c *Controller) CloseView() {
	c.state = c.state.closedView()
}

// StartEdit loads book into the draft and makes it the update target.
func (c *Controller) StartEdit(book api.Book) {
	c.state = c.state.editing(book)
}

// CancelEdit leaves edit mode and clears the draft.
func (c *Controller) CancelEdit() {
	c.state = c.state.canceledEdit()
}

// Logout removes the stored token and resets the session. The in-memory
// session is reset even when storage fails.
func (c *Controller) Logout(ctx context.Context) error {
	c.state = c.state.loggedOut()

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("failed to clear token", "error", err)
		return c.reject(OpLogout, "Failed to clear stored token", err)
	}

	c.logger.Info("logged out")
	return nil
}

// refetch runs ListBooks after a mutation; its failure is reported by
// ListBooks and does not fail the mutation.
func (c *Controller) refetch(ctx context.Context) {
	if err := c.ListBooks(ctx); err != nil {
		c.logger.Debug("refetch failed", "error", err)
	}
}

func (c *Controller) requireToken(op string) error {
	if c.state.Authenticated() {
		return nil
	}
	return c.reject(op, "Not logged in", ErrNotAuthenticated)
}

// fail reports an API error with the per-operation wording.
func (c *Controller) fail(op string, err error) error {
	m := messages[op]
	text := api.MessageOr(err, m.fallback, m.network)

	c.logger.Warn("action failed", "op", op, "status", api.StatusCode(err), "error", err)
	return c.reject(op, text, err)
}

// reject notifies the user once and builds the returned error.
func (c *Controller) reject(op, text string, err error) error {
	c.notifier.Notify(text)
	return &ActionError{Op: op, Message: text, Err: err}
}

func bookInput(d Draft) api.BookInput {
	return api.BookInput{
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		Tags:        SplitTags(d.Tags),
	}
}
