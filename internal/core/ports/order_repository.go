// Package ports defines the contracts between the workflow core and its
// infrastructure: repositories, the unit of work and the message publisher.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The stored version must
	// equal aggregate.Version(); otherwise nothing is written and an error
	// wrapping errs.ErrConflict is returned. On success the aggregate's
	// version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves one order. Returns errs.ObjectNotFoundError if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves the orders with the given ids that exist, newest
	// created first. Missing ids are silently skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)
}
