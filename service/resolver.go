package service

import (
	"context"

	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
)

// Resolver derives the authentication state from the Token Store.
//
// The store is read exactly once, in NewResolver. A token written or cleared
// afterwards is not observed by this Resolver; build a new one to pick it up.
type Resolver struct {
	state core.AuthState
}

// NewResolver reads the store once and caches the derived state
func NewResolver(ctx context.Context, store ports.TokenStore) *Resolver {
	_, ok := store.Get(ctx)
	return &Resolver{state: core.AuthState{IsAuthenticated: ok}}
}

// State returns the state computed at construction
func (r *Resolver) State() core.AuthState {
	return r.state
}

// IsAuthenticated reports whether a token was present at construction
func (r *Resolver) IsAuthenticated() bool {
	return r.state.IsAuthenticated
}
