package ports

import (
	"context"

	"github.com/layer-3/inkgate/core"
)

// EventPublisher publishes auth outcomes to interested observers
type EventPublisher interface {
	PublishAuthEvent(ctx context.Context, event core.AuthEvent) error
}
