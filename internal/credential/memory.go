// Package credential holds the stores that own the provider API key.
package credential

import (
	"context"
	"sync"

	"github.com/davidbz/quill/internal/domain"
)

// MemoryStore keeps the key in process memory.
type MemoryStore struct {
	mu  sync.RWMutex
	key string
}

// NewMemoryStore creates a store seeded with the given key, which may be empty.
func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{
		mu:  sync.RWMutex{},
		key: domain.NormalizeAPIKey(initial),
	}
}

// APIKey returns the stored key, or "" when none is configured.
func (s *MemoryStore) APIKey(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.key, nil
}

// SetAPIKey replaces the stored key.
func (s *MemoryStore) SetAPIKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = domain.NormalizeAPIKey(key)
	return nil
}

// ClearAPIKey removes the stored key.
func (s *MemoryStore) ClearAPIKey(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = ""
	return nil
}
