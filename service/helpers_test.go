package service

import (
	"context"
	"errors"
	"sync"

	"github.com/layer-3/inkgate/adapters/store"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/internal/logger"
	"github.com/layer-3/inkgate/ports"
)

// fakeAPI answers credential requests with canned results.
type fakeAPI struct {
	mu       sync.Mutex
	token    core.Token
	err      error
	calls    []string
	received []core.Credentials
}

func (a *fakeAPI) Login(ctx context.Context, creds core.Credentials) (core.Token, error) {
	return a.answer("login", creds)
}

func (a *fakeAPI) Register(ctx context.Context, creds core.Credentials) (core.Token, error) {
	return a.answer("register", creds)
}

func (a *fakeAPI) answer(call string, creds core.Credentials) (core.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, call)
	a.received = append(a.received, creds)
	return a.token, a.err
}

// recordingNavigator remembers each destination and what the store held at that moment.
type recordingNavigator struct {
	store      ports.TokenStore
	visits     []string
	tokenAtNav []core.Token
}

func (n *recordingNavigator) Navigate(ctx context.Context, to string) error {
	n.visits = append(n.visits, to)
	if n.store != nil {
		tok, _ := n.store.Get(ctx)
		n.tokenAtNav = append(n.tokenAtNav, tok)
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []core.AuthEvent
	err    error
}

func (p *recordingPublisher) PublishAuthEvent(ctx context.Context, e core.AuthEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type recordingMetrics struct {
	attempts []string
	gates    []bool
	signed   []bool
}

func (m *recordingMetrics) AuthAttempt(flow, outcome string) {
	m.attempts = append(m.attempts, flow+":"+outcome)
}
func (m *recordingMetrics) RequestSigned(signed bool) { m.signed = append(m.signed, signed) }
func (m *recordingMetrics) GateDecision(allowed bool) { m.gates = append(m.gates, allowed) }

// failingStore accepts reads but refuses writes.
type failingStore struct {
	ports.TokenStore
}

func (failingStore) Set(context.Context, core.Token) error {
	return core.ErrStoreUnavailable
}

func (failingStore) Clear(context.Context) error {
	return errors.New("read-only")
}

func newTestService(api ports.AuthAPI, s ports.TokenStore, opts ...Option) *AuthService {
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	return NewAuthService(api, s, opts...)
}

func emptyStore() ports.TokenStore {
	return store.NewMemoryStore()
}
