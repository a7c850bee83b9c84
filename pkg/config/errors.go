package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrInvalidBaseURL is returned when the API origin is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid api base url: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the API timeout is negative.
	ErrInvalidTimeout = errors.New("invalid api timeout: must be >= 0")

	// ErrInvalidBackend is returned when the storage backend is not recognized.
	ErrInvalidBackend = errors.New("invalid storage backend: must be bolt or redis")

	// ErrMissingDBPath is returned when the bolt backend has no database path.
	ErrMissingDBPath = errors.New("storage db_path is required for the bolt backend")

	// ErrMissingRedisAddr is returned when the redis backend has no address.
	ErrMissingRedisAddr = errors.New("storage redis.addr is required for the redis backend")

	// ErrMissingTokenKey is returned when the token key is empty.
	ErrMissingTokenKey = errors.New("storage token_key cannot be empty")

	// ErrInvalidDisplayFormat is returned when the display format is not recognized.
	ErrInvalidDisplayFormat = errors.New("invalid display format: must be table, json, or simple")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrInvalidEnv is returned when a SMARTNOTES_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")

	// ErrConfigNotFound is returned when config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
