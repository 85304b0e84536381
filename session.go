package inkgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/layer-3/inkgate/adapters/authapi"
	"github.com/layer-3/inkgate/adapters/events"
	"github.com/layer-3/inkgate/adapters/metrics"
	"github.com/layer-3/inkgate/adapters/store"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
	"github.com/layer-3/inkgate/service"
	"github.com/layer-3/inkgate/transport/client"
)

// Session wires the token store, the credential flows and the signed API
// client from one configuration.
type Session struct {
	cfg       *Config
	store     ports.TokenStore
	auth      *service.AuthService
	api       *client.Client
	metrics   *metrics.Prometheus
	registry  *prometheus.Registry
	navigator ports.Navigator
	logger    *slog.Logger

	closers []func() error
}

var _ Client = (*Session)(nil)

// SessionOption configures Open
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	logger    *slog.Logger
	navigator ports.Navigator
	store     ports.TokenStore
	authAPI   ports.AuthAPI
}

// WithLogger sets the logger shared by every component
func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) { o.logger = l }
}

// WithNavigator sets what happens after a successful credential flow.
// By default the destination is only logged.
func WithNavigator(nav ports.Navigator) SessionOption {
	return func(o *sessionOptions) { o.navigator = nav }
}

// WithStore replaces the configured token store backend
func WithStore(s ports.TokenStore) SessionOption {
	return func(o *sessionOptions) { o.store = s }
}

// WithAuthAPI replaces the HTTP auth endpoints
func WithAuthAPI(api ports.AuthAPI) SessionOption {
	return func(o *sessionOptions) { o.authAPI = api }
}

// Open builds a Session from cfg. Close releases the store and event backends.
func Open(ctx context.Context, cfg *Config, opts ...SessionOption) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := sessionOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		logger:   o.logger,
	}

	prom, err := metrics.NewPrometheus(s.registry)
	if err != nil {
		return nil, err
	}
	s.metrics = prom

	s.store = o.store
	if s.store == nil {
		if s.store, err = s.openStore(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("open token store: %w", err)
		}
	}

	pub, err := s.openEvents()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open event publisher: %w", err)
	}

	api := o.authAPI
	if api == nil {
		api = authapi.NewHTTPAPI(cfg.API.BaseURL,
			authapi.WithPaths(cfg.API.LoginPath, cfg.API.RegisterPath),
			authapi.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		)
	}

	s.auth = service.NewAuthService(api, s.store,
		service.WithEventPublisher(pub),
		service.WithMetrics(prom),
		service.WithLogger(s.logger),
		service.WithRootPath(cfg.Web.RootPath),
	)

	s.api = client.New(cfg.API.BaseURL, s.store,
		client.WithTimeout(cfg.API.Timeout),
		client.WithMetrics(prom),
	)

	s.navigator = o.navigator
	if s.navigator == nil {
		s.navigator = ports.NavigatorFunc(func(_ context.Context, to string) error {
			s.logger.Info("navigate", "to", to)
			return nil
		})
	}

	return s, nil
}

func (s *Session) openStore(ctx context.Context) (ports.TokenStore, error) {
	sc := s.cfg.Store

	switch sc.Backend {
	case "memory":
		return store.NewMemoryStore(), nil

	case "file":
		path := sc.FilePath
		if path == "" {
			path = store.DefaultFilePath(sc.Key)
		}
		return store.NewFileStore(path, s.logger), nil

	case "redis":
		rdb, err := newRedisClient(sc.RedisURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Reads degrade to absent; writes will report the failure.
			s.logger.Warn("redis token store unreachable", "error", err)
		}
		return store.NewRedisStore(rdb, sc.Key, s.logger), nil

	case "badger":
		bs, err := store.OpenBadgerStore(sc.BadgerDir, sc.Key, s.logger)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, bs.Close)
		return bs, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
}

func (s *Session) openEvents() (ports.EventPublisher, error) {
	ec := s.cfg.Events
	wmLogger := watermill.NewSlogLogger(s.logger)

	switch ec.Backend {
	case "", "none":
		return events.Discard{}, nil

	case "gochannel":
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		s.closers = append(s.closers, pubSub.Close)
		return events.NewWatermillPublisher(pubSub, ec.Topic), nil

	case "redisstream":
		rdb, err := newRedisClient(ec.RedisURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, rdb.Close)
		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{Client: rdb}, wmLogger)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, publisher.Close)
		return events.NewWatermillPublisher(publisher, ec.Topic), nil
	}

	return nil, fmt.Errorf("unknown events backend %q", ec.Backend)
}

func newRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Login runs the login flow
func (s *Session) Login(ctx context.Context, creds Credentials) error {
	return s.auth.Login(ctx, creds, s.navigator)
}

// Register runs the registration flow
func (s *Session) Register(ctx context.Context, creds Credentials) error {
	return s.auth.Register(ctx, creds, s.navigator)
}

// Logout removes the stored token
func (s *Session) Logout(ctx context.Context) error {
	return s.auth.Logout(ctx)
}

// IsAuthenticated resolves the state from a fresh read of the store
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return service.NewResolver(ctx, s.store).IsAuthenticated()
}

// Token returns the stored token, if any
func (s *Session) Token(ctx context.Context) (core.Token, bool) {
	return s.store.Get(ctx)
}

// HTTPClient returns the signing HTTP client
func (s *Session) HTTPClient() *http.Client {
	return s.api.HTTPClient()
}

// API returns the signing API client
func (s *Session) API() *client.Client {
	return s.api
}

// AuthService returns the credential flow service
func (s *Session) AuthService() *service.AuthService {
	return s.auth
}

// Store returns the token store
func (s *Session) Store() ports.TokenStore {
	return s.store
}

// Metrics returns the metrics recorder
func (s *Session) Metrics() ports.Metrics {
	return s.metrics
}

// Gatherer returns the registry holding the session's collectors
func (s *Session) Gatherer() prometheus.Gatherer {
	return s.registry
}

// Config returns the configuration the session was opened with
func (s *Session) Config() *Config {
	return s.cfg
}

// Close releases backends in reverse order of opening
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
