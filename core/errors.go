package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyToken        = errors.New("empty token")
	ErrTransport         = errors.New("auth endpoint unreachable")
	ErrMalformedResponse = errors.New("auth response missing token")
	ErrStoreUnavailable  = errors.New("token store unavailable")
)

// RejectedError is returned when the auth endpoint answered with a non-2xx status.
// Message holds the body's "message" field and may be empty.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("auth request rejected with status %d", e.Status)
	}
	return fmt.Sprintf("auth request rejected with status %d: %s", e.Status, e.Message)
}

// AuthError is the single user-facing error a credential flow produces.
type AuthError struct {
	Flow    FlowKind
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NewAuthError normalizes cause into the message shown for flow.
// Only a rejection carrying a message overrides the flow default.
func NewAuthError(flow FlowKind, cause error) *AuthError {
	msg := flow.DefaultMessage()

	var rejected *RejectedError
	if errors.As(cause, &rejected) && rejected.Message != "" {
		msg = rejected.Message
	}

	return &AuthError{Flow: flow, Message: msg, Cause: cause}
}
