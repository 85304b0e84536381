package store

import (
	"context"
	"sync"

	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
)

// MemoryStore is an in-memory implementation of the TokenStore interface
type MemoryStore struct {
	token core.Token
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.TokenStore {
	return &MemoryStore{}
}

// Get returns the stored token
func (s *MemoryStore) Get(ctx context.Context) (core.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.token.Present()
}

// Set replaces the stored token
func (s *MemoryStore) Set(ctx context.Context, token core.Token) error {
	if !token.Present() {
		return core.ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return nil
}

// Clear drops the stored token
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	return nil
}
