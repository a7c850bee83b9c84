package tokenstore

import "errors"

// Common errors returned by Open and the backends.
var (
	// ErrUnknownBackend is returned for a backend name Open does not know.
	ErrUnknownBackend = errors.New("unknown token store backend")

	// ErrMissingDBPath is returned when the bolt backend has no file path.
	ErrMissingDBPath = errors.New("database path is required")

	// ErrMissingRedisAddr is returned when the redis backend has no address.
	ErrMissingRedisAddr = errors.New("redis address is required")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("token store closed")
)
