package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
)

const (
	DefaultLoginPath    = "/auth/login"
	DefaultRegisterPath = "/auth/register"

	// Error bodies larger than this are not inspected for a message.
	maxBodyBytes = 1 << 20
)

// HTTPAPI implements the AuthAPI interface against the remote JSON endpoints
type HTTPAPI struct {
	baseURL      string
	loginPath    string
	registerPath string
	client       *http.Client
}

// Option configures an HTTPAPI
type Option func(*HTTPAPI)

// WithPaths overrides the login and register endpoint paths
func WithPaths(login, register string) Option {
	return func(a *HTTPAPI) {
		if login != "" {
			a.loginPath = login
		}
		if register != "" {
			a.registerPath = register
		}
	}
}

// WithHTTPClient replaces the HTTP client used for credential requests
func WithHTTPClient(client *http.Client) Option {
	return func(a *HTTPAPI) {
		if client != nil {
			a.client = client
		}
	}
}

// NewHTTPAPI creates a new auth API client rooted at baseURL
func NewHTTPAPI(baseURL string, opts ...Option) ports.AuthAPI {
	a := &HTTPAPI{
		baseURL:      strings.TrimRight(baseURL, "/"),
		loginPath:    DefaultLoginPath,
		registerPath: DefaultRegisterPath,
		client:       &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Login exchanges credentials for a token
func (a *HTTPAPI) Login(ctx context.Context, creds core.Credentials) (core.Token, error) {
	return a.exchange(ctx, a.loginPath, creds)
}

// Register creates an account and returns its token
func (a *HTTPAPI) Register(ctx context.Context, creds core.Credentials) (core.Token, error) {
	return a.exchange(ctx, a.registerPath, creds)
}

func (a *HTTPAPI) exchange(ctx context.Context, path string, creds core.Credentials) (core.Token, error) {
	body, err := json.Marshal(credentialsRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return "", fmt.Errorf("marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer resp.Body.Close()

	return parseTokenResponse(resp)
}

// parseTokenResponse turns a response into a token or a classified error.
func parseTokenResponse(resp *http.Response) (core.Token, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("%w: read body: %v", core.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rejected := &core.RejectedError{Status: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil {
			rejected.Message = strings.TrimSpace(errResp.Message)
		}
		return "", rejected
	}

	var tokResp tokenResponse
	if err := json.Unmarshal(data, &tokResp); err != nil {
		return "", errors.Join(core.ErrMalformedResponse, err)
	}
	if tokResp.Token == "" {
		return "", core.ErrMalformedResponse
	}

	return core.Token(tokResp.Token), nil
}
