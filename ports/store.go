package ports

import (
	"context"

	"github.com/layer-3/inkgate/core"
)

// TokenStore holds the single persisted token
type TokenStore interface {
	// Get returns the current token. It reports false when storage is empty
	// or cannot be read; it never fails.
	Get(ctx context.Context) (core.Token, bool)

	// Set overwrites any existing token
	Set(ctx context.Context, token core.Token) error

	// Clear removes the token
	Clear(ctx context.Context) error
}
