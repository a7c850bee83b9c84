// Package tokenstore persists the bearer token between runs.
//
// A Store holds at most one token under a single key. The bolt backend keeps
// it in a local BoltDB file; the redis backend shares it through a redis
// server. Loading a missing token yields "" and no error.
//
// Example usage:
//
//	store, err := tokenstore.Open(tokenstore.Config{
//	    Backend: tokenstore.BackendBolt,
//	    DBPath:  "~/.config/smartnotes/token.db",
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	token, err := store.Load(ctx)
package tokenstore

import (
	"context"
	"time"
)

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultKey is the key holding the token when Config.Key is empty.
const DefaultKey = "token"

// Store is a single-key durable store for the bearer token.
type Store interface {
	// Load returns the stored token, or "" if none is stored.
	Load(ctx context.Context) (string, error)

	// Save stores token verbatim, replacing any previous value.
	Save(ctx context.Context, token string) error

	// Clear removes the token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error

	// Close releases the backend.
	Close() error
}

// Config contains token store configuration.
type Config struct {
	// Backend is bolt (default), redis or memory.
	Backend string

	// Key holding the token.
	Key string

	// DBPath is the BoltDB file; "~" expands to the home directory.
	DBPath string

	// Timeout bounds waiting for the BoltDB file lock (default 1s).
	Timeout time.Duration

	// Redis connection settings.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func (c Config) key() string {
	if c.Key == "" {
		return DefaultKey
	}
	return c.Key
}
