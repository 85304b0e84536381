package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/inkgate/ports"
)

// DefaultBaseURL is used when no API base URL is configured
const DefaultBaseURL = "http://localhost:5000"

// Client provides HTTP communication with the application API.
// Every request goes through the Signer registered at construction.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client
type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
	metrics   ports.Metrics
	userAgent string
}

// WithTimeout sets the overall request timeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport sets the transport the signer delegates to
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithMetrics counts signed and unsigned requests
func WithMetrics(m ports.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// New creates a client for baseURL that signs requests from store.
func New(baseURL string, store ports.TokenStore, opts ...Option) *Client {
	o := options{timeout: 30 * time.Second, userAgent: "inkgate/1.0"}
	for _, opt := range opts {
		opt(&o)
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	var rt http.RoundTripper = NewSigner(store, o.transport, o.metrics)
	if o.userAgent != "" {
		rt = userAgent{base: rt, value: o.userAgent}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		},
	}
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the signing *http.Client for callers that build their own requests.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.http.Do(req)
}

// Post performs a POST request with JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}

// Do sends an arbitrary request through the signing transport.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}

type userAgent struct {
	base  http.RoundTripper
	value string
}

func (u userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.Header == nil || req.Header.Get("User-Agent") != "" {
		return u.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", u.value)
	return u.base.RoundTrip(r)
}
