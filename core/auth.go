package core

import "time"

// Token is the opaque bearer credential returned by the auth endpoints.
// A non-empty Token is the only authentication signal on the client.
type Token string

// Present reports whether t carries a credential.
func (t Token) Present() bool {
	return t != ""
}

// AuthState is derived from the Token Store and never stored itself
type AuthState struct {
	IsAuthenticated bool
}

// Credentials are submitted by a credential flow and never persisted
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FlowKind identifies a credential flow
type FlowKind string

const (
	FlowLogin    FlowKind = "login"
	FlowRegister FlowKind = "register"
)

// DefaultMessage is shown when a failed flow carries no usable server message.
func (k FlowKind) DefaultMessage() string {
	switch k {
	case FlowRegister:
		return "Registration failed"
	default:
		return "Login failed"
	}
}

// FlowState is the state of a single credential flow instance
type FlowState string

const (
	FlowIdle       FlowState = "idle"
	FlowSubmitting FlowState = "submitting"
)

// EventKind names an auth event published after a flow outcome
type EventKind string

const (
	EventLogin    EventKind = "login"
	EventRegister EventKind = "register"
	EventLogout   EventKind = "logout"
)

// Outcome of a published auth event
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// AuthEvent records a credential flow outcome or a logout.
// It never carries the token.
type AuthEvent struct {
	ID      string    // Unique event identifier
	Kind    EventKind // Which operation produced the event
	Outcome Outcome   // succeeded or failed
	Email   string    // Submitted email, empty for logout
	Message string    // AuthError message on failure
	At      time.Time // When the outcome was observed
}
