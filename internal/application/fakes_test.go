package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/authbox/authbox/internal/ports"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

type fakeTokens struct {
	n int
}

func (t *fakeTokens) NewToken() string {
	t.n++
	return fmt.Sprintf("token-%d", t.n)
}

// countingStore wraps a StateStore and counts mutating calls.
type countingStore struct {
	ports.StateStore

	mu      sync.Mutex
	sets    int
	removes int
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()

	return s.StateStore.Set(ctx, key, value)
}

func (s *countingStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	s.removes++
	s.mu.Unlock()

	return s.StateStore.Remove(ctx, key)
}

func (s *countingStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sets + s.removes
}
