package ports

import (
	"context"

	"logistics/internal/core/domain/model/outbox"
)

// OutboxRepository stores notifications written in the same transaction as
// the change that produced them.
type OutboxRepository interface {
	AddMany(ctx context.Context, messages []*outbox.Message) error

	// GetPending returns up to limit unpublished messages with fewer than
	// maxAttempts attempts, oldest first. Rows are locked for the rest of the
	// transaction and rows locked by other relays are skipped.
	GetPending(ctx context.Context, limit, maxAttempts int) ([]*outbox.Message, error)

	// Update stores attempts, publication time and last error.
	Update(ctx context.Context, message *outbox.Message) error
}
