// Package client is the outbound side of the pipeline: an HTTP client for the
// application API whose transport signs every request with the stored token.
package client

import (
	"net/http"

	"github.com/layer-3/inkgate/ports"
)

// Signer is an http.RoundTripper that attaches "Authorization: Bearer <token>"
// when the Token Store holds a token. It only reads the store.
type Signer struct {
	store   ports.TokenStore
	base    http.RoundTripper
	metrics ports.Metrics
}

// NewSigner wraps base; a nil base uses http.DefaultTransport.
func NewSigner(store ports.TokenStore, base http.RoundTripper, metrics ports.Metrics) *Signer {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Signer{store: store, base: base, metrics: metrics}
}

// RoundTrip signs a copy of req and hands it to the base transport.
// Requests that cannot carry headers are forwarded untouched.
func (s *Signer) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.Header == nil {
		return s.base.RoundTrip(req)
	}

	token, ok := s.store.Get(req.Context())
	s.observe(ok)
	if !ok {
		return s.base.RoundTrip(req)
	}

	signed := req.Clone(req.Context())
	signed.Header.Set("Authorization", "Bearer "+string(token))
	return s.base.RoundTrip(signed)
}

func (s *Signer) observe(signed bool) {
	if s.metrics != nil {
		s.metrics.RequestSigned(signed)
	}
}
