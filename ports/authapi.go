package ports

import (
	"context"

	"github.com/layer-3/inkgate/core"
)

// AuthAPI exchanges credentials for a token at the remote auth endpoints.
// Failures are classified as core.ErrTransport, *core.RejectedError or
// core.ErrMalformedResponse.
type AuthAPI interface {
	Login(ctx context.Context, creds core.Credentials) (core.Token, error)
	Register(ctx context.Context, creds core.Credentials) (core.Token, error)
}
