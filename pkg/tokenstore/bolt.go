package tokenstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/blessedav/FINALGO/pkg/logger"
)

var bucketCredentials = []byte("credentials") // Key -> token

// boltStore opens the database for each operation so the file lock is only
// held briefly and several processes can share one token file.
type boltStore struct {
	path    string
	key     []byte
	timeout time.Duration
	logger  logger.Logger

	mu     sync.Mutex
	closed bool
}

// NewBolt creates a BoltDB-backed store and initializes its bucket.
func NewBolt(cfg Config, log logger.Logger) (Store, error) {
	if cfg.DBPath == "" {
		return nil, ErrMissingDBPath
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}

	dbPath := expandHome(cfg.DBPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	s := &boltStore{
		path:    dbPath,
		key:     []byte(cfg.key()),
		timeout: cfg.Timeout,
		logger:  log.With("component", "tokenstore", "backend", BackendBolt),
	}

	if err := s.update(func(*bolt.Bucket) error { return nil }); err != nil {
		return nil, err
	}

	s.logger.Debug("token store initialized", "db_path", dbPath)
	return s, nil
}

// Load implements Store.Load.
func (s *boltStore) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var token string
	err := s.withDB(func(db *bolt.DB) error {
		return db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketCredentials)
			if b == nil {
				return nil
			}
			// Copy out; the slice is only valid inside the transaction.
			token = string(b.Get(s.key))
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// Save implements Store.Save.
func (s *boltStore) Save(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.update(func(b *bolt.Bucket) error {
		if err := b.Put(s.key, []byte(token)); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
		return nil
	})
}

// Clear implements Store.Clear.
func (s *boltStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.update(func(b *bolt.Bucket) error {
		if err := b.Delete(s.key); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		return nil
	})
}

// Close implements Store.Close.
func (s *boltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *boltStore) update(fn func(b *bolt.Bucket) error) error {
	return s.withDB(func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			b, err := tx.CreateBucketIfNotExists(bucketCredentials)
			if err != nil {
				return fmt.Errorf("failed to create credentials bucket: %w", err)
			}
			return fn(b)
		})
	})
}

func (s *boltStore) withDB(fn func(db *bolt.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: s.timeout})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			s.logger.Error("failed to close database", "error", closeErr)
		}
	}()

	return fn(db)
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
