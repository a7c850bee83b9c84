package tokenstore

import (
	"context"
	"sync"
)

// memoryStore keeps the token in process memory. Useful for testing.
type memoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemory creates an in-memory store holding token.
func NewMemory(token string) Store {
	return &memoryStore{token: token}
}

// Load implements Store.Load.
func (s *memoryStore) Load(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Save implements Store.Save.
func (s *memoryStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear implements Store.Clear.
func (s *memoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Close implements Store.Close.
func (s *memoryStore) Close() error {
	return nil
}
