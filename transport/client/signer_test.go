package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/inkgate/adapters/store"
	"github.com/layer-3/inkgate/core"
)

// recordingTransport captures what the signer forwarded.
type recordingTransport struct {
	got   []*http.Request
	calls int
	err   error
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	t.got = append(t.got, req)
	if t.err != nil {
		return nil, t.err
	}
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
}

type signCounter struct{ signed, unsigned int }

func (c *signCounter) AuthAttempt(string, string) {}
func (c *signCounter) GateDecision(bool)          {}
func (c *signCounter) RequestSigned(signed bool) {
	if signed {
		c.signed++
	} else {
		c.unsigned++
	}
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://api.test/projects", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace", "abc")
	return req
}

func TestSigner_AttachesBearerWhenTokenPresent(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), "jwt-token"))
	base := &recordingTransport{}
	counter := &signCounter{}

	req := newRequest(t)
	_, err := NewSigner(s, base, counter).RoundTrip(req)
	require.NoError(t, err)

	require.Len(t, base.got, 1)
	assert.Equal(t, "Bearer jwt-token", base.got[0].Header.Get("Authorization"))
	assert.Equal(t, "abc", base.got[0].Header.Get("X-Trace"))
	assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")
	assert.Equal(t, 1, counter.signed)
}

func TestSigner_LeavesHeadersWhenTokenAbsent(t *testing.T) {
	base := &recordingTransport{}
	counter := &signCounter{}

	req := newRequest(t)
	_, err := NewSigner(store.NewMemoryStore(), base, counter).RoundTrip(req)
	require.NoError(t, err)

	require.Len(t, base.got, 1)
	assert.Same(t, req, base.got[0])
	assert.Equal(t, http.Header{"X-Trace": []string{"abc"}}, base.got[0].Header)
	assert.Equal(t, 1, counter.unsigned)
}

func TestSigner_ReadsStoreOnEveryRequest(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	base := &recordingTransport{}
	signer := NewSigner(s, base, nil)

	_, _ = signer.RoundTrip(newRequest(t))
	require.NoError(t, s.Set(ctx, "first"))
	_, _ = signer.RoundTrip(newRequest(t))
	require.NoError(t, s.Set(ctx, "second"))
	_, _ = signer.RoundTrip(newRequest(t))
	require.NoError(t, s.Clear(ctx))
	_, _ = signer.RoundTrip(newRequest(t))

	require.Len(t, base.got, 4)
	assert.Empty(t, base.got[0].Header.Get("Authorization"))
	assert.Equal(t, "Bearer first", base.got[1].Header.Get("Authorization"))
	assert.Equal(t, "Bearer second", base.got[2].Header.Get("Authorization"))
	assert.Empty(t, base.got[3].Header.Get("Authorization"))
}

func TestSigner_MalformedRequestPassesThrough(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), "jwt-token"))
	base := &recordingTransport{}
	signer := NewSigner(s, base, nil)

	req := &http.Request{Method: http.MethodGet}
	_, err := signer.RoundTrip(req)
	require.NoError(t, err)
	require.Len(t, base.got, 1)
	assert.Same(t, req, base.got[0])
	assert.Nil(t, base.got[0].Header)

	_, err = signer.RoundTrip(nil)
	require.NoError(t, err)
	assert.Nil(t, base.got[1])
}

func TestSigner_PropagatesBaseError(t *testing.T) {
	boom := errors.New("connection refused")
	base := &recordingTransport{err: boom}

	_, err := NewSigner(store.NewMemoryStore(), base, nil).RoundTrip(newRequest(t))
	assert.Same(t, boom, err)
}

func TestSigner_DoesNotWriteStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(ctx, core.Token("keep")))

	_, _ = NewSigner(s, &recordingTransport{}, nil).RoundTrip(newRequest(t))

	tok, ok := s.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, core.Token("keep"), tok)
}
