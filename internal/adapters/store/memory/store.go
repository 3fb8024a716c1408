package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/authbox/authbox/internal/domain"
	"github.com/authbox/authbox/internal/ports"
)

// Store is a volatile StateStore keeping entries in a process-local map. It is
// safe for concurrent access and best suited for tests.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ ports.StateStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{entries: make(map[string]string)}
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("state entry %q: %w", key, domain.ErrKeyNotFound)
	}

	return value, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len reports how many entries the store currently holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
