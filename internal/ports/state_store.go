package ports

import "context"

// StateStore is the uniform surface over one key-value storage backend.
// Get returns an error wrapping domain.ErrKeyNotFound when the key is
// absent; Remove of an absent key is not an error.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
