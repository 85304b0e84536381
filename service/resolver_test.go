package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/inkgate/core"
)

// countingStore counts reads to prove the resolver reads exactly once.
type countingStore struct {
	*fakeTokenStore
	gets int
}

type fakeTokenStore struct {
	token core.Token
}

func (s *countingStore) Get(ctx context.Context) (core.Token, bool) {
	s.gets++
	return s.token, s.token.Present()
}

func (s *fakeTokenStore) Set(ctx context.Context, t core.Token) error {
	s.token = t
	return nil
}

func (s *fakeTokenStore) Clear(ctx context.Context) error {
	s.token = ""
	return nil
}

func TestResolver_ReflectsTokenPresence(t *testing.T) {
	ctx := context.Background()
	s := emptyStore()

	assert.False(t, NewResolver(ctx, s).IsAuthenticated())

	require.NoError(t, s.Set(ctx, "jwt-token"))
	r := NewResolver(ctx, s)
	assert.True(t, r.IsAuthenticated())
	assert.Equal(t, core.AuthState{IsAuthenticated: true}, r.State())
}

func TestResolver_ComputesOnceAtConstruction(t *testing.T) {
	ctx := context.Background()
	s := &countingStore{fakeTokenStore: &fakeTokenStore{}}

	r := NewResolver(ctx, s)
	require.Equal(t, 1, s.gets)
	require.False(t, r.IsAuthenticated())

	// A later write is not observed by the existing resolver.
	require.NoError(t, s.Set(ctx, "jwt-token"))
	for i := 0; i < 3; i++ {
		assert.False(t, r.IsAuthenticated())
		_ = r.State()
	}
	assert.Equal(t, 1, s.gets)

	// A fresh resolver sees it.
	assert.True(t, NewResolver(ctx, s).IsAuthenticated())
}

func TestResolver_ClearNotObservedUntilRemount(t *testing.T) {
	ctx := context.Background()
	s := emptyStore()
	require.NoError(t, s.Set(ctx, "jwt-token"))

	r := NewResolver(ctx, s)
	require.NoError(t, s.Clear(ctx))

	assert.True(t, r.IsAuthenticated())
	assert.False(t, NewResolver(ctx, s).IsAuthenticated())
}
