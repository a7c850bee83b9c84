package session

import (
	"errors"
	"fmt"
)

// Validation and precondition errors, wrapped in *ActionError.
var (
	// ErrNotAuthenticated is returned by catalog operations without a token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingCredentials is returned when a required auth field is empty.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrMissingTitle is returned when a book draft has no title.
	ErrMissingTitle = errors.New("title is required")
)

// ActionError is a failed user action. Message is the text shown to the user.
type ActionError struct {
	Op      string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ActionError) Unwrap() error { return e.Err }
