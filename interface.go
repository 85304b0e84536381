package inkgate

import (
	"context"
	"net/http"

	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/internal/config"
	"github.com/layer-3/inkgate/ports"
)

// Token is the opaque bearer credential issued by the auth backend
type Token = core.Token

// Credentials is an email/password pair
type Credentials = core.Credentials

// Config is the complete inkgate configuration
type Config = config.Config

// Navigator performs the transition after a successful login or registration
type Navigator = ports.Navigator

// Client represents the public interface for an authentication session
type Client interface {
	// Login exchanges credentials for a token, stores it and navigates to the root path
	Login(ctx context.Context, creds Credentials) error

	// Register creates an account, stores the issued token and navigates to the root path
	Register(ctx context.Context, creds Credentials) error

	// Logout removes the stored token
	Logout(ctx context.Context) error

	// IsAuthenticated reads the token store and reports whether a token is present
	IsAuthenticated(ctx context.Context) bool

	// HTTPClient returns a client that attaches the stored token to every request
	HTTPClient() *http.Client
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads configuration from path, the environment and overrides
func LoadConfig(path string, overrides map[string]any) (*Config, error) {
	return config.Load(path, overrides)
}
