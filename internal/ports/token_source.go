package ports

import "github.com/google/uuid"

// TokenSource mints opaque session tokens.
type TokenSource interface {
	NewToken() string
}

type UUIDTokenSource struct{}

func (UUIDTokenSource) NewToken() string {
	return uuid.NewString()
}
