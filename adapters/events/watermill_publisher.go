package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/layer-3/inkgate/core"
	"github.com/layer-3/inkgate/ports"
)

// DefaultTopic is the topic auth events are published to
const DefaultTopic = "inkgate.auth"

// AuthEventPayload is the wire form of an auth event
type AuthEventPayload struct {
	Kind    string    `json:"kind"`
	Outcome string    `json:"outcome"`
	Email   string    `json:"email,omitempty"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher, topic string) ports.EventPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
	}
}

// PublishAuthEvent publishes an auth event
func (p *WatermillPublisher) PublishAuthEvent(ctx context.Context, event core.AuthEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(AuthEventPayload{
		Kind:    string(event.Kind),
		Outcome: string(event.Outcome),
		Email:   event.Email,
		Message: event.Message,
		At:      event.At,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("kind", string(event.Kind))
	msg.Metadata.Set("outcome", string(event.Outcome))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Discard drops every event. Used when no event backend is configured.
type Discard struct{}

func (Discard) PublishAuthEvent(context.Context, core.AuthEvent) error {
	return nil
}
