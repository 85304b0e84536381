package service

import "github.com/layer-3/inkgate/core"

// DefaultLoginPath is where the gate sends unauthenticated visitors
const DefaultLoginPath = "/login"

// Decision is the outcome of an access check. Exactly one of Render and
// RedirectTo is set.
type Decision struct {
	Render     bool
	RedirectTo string
}

// Gate decides whether protected content may render
type Gate struct {
	LoginPath string
}

// NewGate returns a gate redirecting to loginPath, or DefaultLoginPath if empty
func NewGate(loginPath string) Gate {
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	return Gate{LoginPath: loginPath}
}

// Decide renders when authenticated and redirects to the login path otherwise
func (g Gate) Decide(state core.AuthState) Decision {
	if state.IsAuthenticated {
		return Decision{Render: true}
	}

	to := g.LoginPath
	if to == "" {
		to = DefaultLoginPath
	}
	return Decision{RedirectTo: to}
}
