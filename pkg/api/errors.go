package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork matches every *NetworkError via errors.Is.
var ErrNetwork = errors.New("network failure")

// NetworkError reports that no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports ErrNetwork as a match.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError is a response the server rejected or the client could not use.
//
// Message holds the server "error" field and is empty when the field is
// absent or the body could not be parsed.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNetwork reports whether err is a network-level failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// MessageOr maps err to user-facing text: networkFallback for network
// failures, the server message when present, fallback otherwise.
func MessageOr(err error, fallback, networkFallback string) string {
	if IsNetwork(err) {
		return networkFallback
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}
