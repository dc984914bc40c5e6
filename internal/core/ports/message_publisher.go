package ports

import (
	"context"

	"logistics/internal/core/domain/model/outbox"
)

// MessagePublisher delivers outbox messages to the message broker.
type MessagePublisher interface {
	// Publish sends message and returns once the broker acknowledged it.
	Publish(ctx context.Context, message *outbox.Message) error
}
