package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
)

// DefaultRootPath is where a successful credential flow navigates to
const DefaultRootPath = "/"

// AuthService runs the credential flows against the remote auth endpoints
type AuthService struct {
	api      ports.AuthAPI
	store    ports.TokenStore
	eventPub ports.EventPublisher
	metrics  ports.Metrics
	logger   *slog.Logger

	rootPath string
}

// Option configures an AuthService
type Option func(*AuthService)

// WithEventPublisher publishes flow outcomes and logouts
func WithEventPublisher(pub ports.EventPublisher) Option {
	return func(s *AuthService) { s.eventPub = pub }
}

// WithMetrics records flow outcomes
func WithMetrics(m ports.Metrics) Option {
	return func(s *AuthService) { s.metrics = m }
}

// WithLogger sets the service logger
func WithLogger(l *slog.Logger) Option {
	return func(s *AuthService) { s.logger = l }
}

// WithRootPath overrides the navigation target after success
func WithRootPath(path string) Option {
	return func(s *AuthService) {
		if path != "" {
			s.rootPath = path
		}
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(api ports.AuthAPI, store ports.TokenStore, opts ...Option) *AuthService {
	s := &AuthService{
		api:      api,
		store:    store,
		logger:   slog.Default(),
		rootPath: DefaultRootPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewFlow returns an idle flow instance of the given kind
func (s *AuthService) NewFlow(kind core.FlowKind) *Flow {
	return &Flow{svc: s, kind: kind, state: core.FlowIdle}
}

// Login runs a one-shot login flow
func (s *AuthService) Login(ctx context.Context, creds core.Credentials, nav ports.Navigator) error {
	return s.NewFlow(core.FlowLogin).Submit(ctx, creds, nav)
}

// Register runs a one-shot registration flow
func (s *AuthService) Register(ctx context.Context, creds core.Credentials, nav ports.Navigator) error {
	return s.NewFlow(core.FlowRegister).Submit(ctx, creds, nav)
}

// Logout removes the stored token
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	s.logger.Info("token cleared")
	s.publish(ctx, core.AuthEvent{Kind: core.EventLogout, Outcome: core.OutcomeSucceeded})
	return nil
}

// Flow is one login or registration form instance.
//
// Flow does not guard against a second Submit while one is outstanding; both
// run to completion and the last one to finish decides the visible error.
type Flow struct {
	svc  *AuthService
	kind core.FlowKind

	mu    sync.Mutex
	state core.FlowState
	err   *core.AuthError
}

// Kind returns the flow kind
func (f *Flow) Kind() core.FlowKind {
	return f.kind
}

// State returns idle or submitting
func (f *Flow) State() core.FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the current user-facing error, or nil
func (f *Flow) Err() *core.AuthError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Submit sends creds to the endpoint for this flow. On success the token is
// stored and then nav is sent to the root path. On failure the returned
// *core.AuthError is also kept as the flow's current error; nothing is stored
// and nav is not called.
func (f *Flow) Submit(ctx context.Context, creds core.Credentials, nav ports.Navigator) error {
	f.mu.Lock()
	f.state = core.FlowSubmitting
	f.err = nil
	f.mu.Unlock()

	err := f.run(ctx, creds, nav)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = core.FlowIdle
	if err != nil {
		f.err = err
		return err
	}
	return nil
}

func (f *Flow) run(ctx context.Context, creds core.Credentials, nav ports.Navigator) *core.AuthError {
	s := f.svc
	log := s.logger.With("flow", string(f.kind), "email", creds.Email)

	var (
		token core.Token
		err   error
	)
	switch f.kind {
	case core.FlowRegister:
		token, err = s.api.Register(ctx, creds)
	default:
		token, err = s.api.Login(ctx, creds)
	}
	if err == nil && !token.Present() {
		err = core.ErrMalformedResponse
	}
	if err == nil {
		// The write must complete before navigation fires.
		err = s.store.Set(ctx, token)
	}
	if err != nil {
		authErr := core.NewAuthError(f.kind, err)
		log.Warn("credential flow failed", "error", err, "message", authErr.Message)
		f.record(ctx, creds, core.OutcomeFailed, authErr.Message)
		return authErr
	}

	log.Info("credential flow succeeded")
	f.record(ctx, creds, core.OutcomeSucceeded, "")

	if nav != nil {
		if navErr := nav.Navigate(ctx, s.rootPath); navErr != nil {
			log.Error("navigation after login failed", "to", s.rootPath, "error", navErr)
		}
	}
	return nil
}

func (f *Flow) record(ctx context.Context, creds core.Credentials, outcome core.Outcome, message string) {
	if f.svc.metrics != nil {
		f.svc.metrics.AuthAttempt(string(f.kind), string(outcome))
	}

	kind := core.EventLogin
	if f.kind == core.FlowRegister {
		kind = core.EventRegister
	}
	f.svc.publish(ctx, core.AuthEvent{
		Kind:    kind,
		Outcome: outcome,
		Email:   creds.Email,
		Message: message,
	})
}

func (s *AuthService) publish(ctx context.Context, event core.AuthEvent) {
	if s.eventPub == nil {
		return
	}

	event.ID = uuid.NewString()
	event.At = time.Now().UTC()

	// Publishing is best effort; the token state is already settled.
	if err := s.eventPub.PublishAuthEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish auth event", "kind", string(event.Kind), "error", err)
	}
}
