package inkgate

import (
	"github.com/layer-3/inkgate/core"
)

var (
	// ErrEmptyToken is returned when storing an empty token
	ErrEmptyToken = core.ErrEmptyToken

	// ErrTransport is wrapped when the auth endpoint could not be reached
	ErrTransport = core.ErrTransport

	// ErrMalformedResponse is wrapped when a success response carries no token
	ErrMalformedResponse = core.ErrMalformedResponse

	// ErrStoreUnavailable is wrapped when the token store refuses a write
	ErrStoreUnavailable = core.ErrStoreUnavailable
)

// AuthError is the single error a failed login or registration returns
type AuthError = core.AuthError

// RejectedError is a non-2xx answer from the auth endpoint
type RejectedError = core.RejectedError
