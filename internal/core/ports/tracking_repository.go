package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
)

// TrackingRepository is the append-only store of tracking events.
type TrackingRepository interface {
	// AddMany appends events in the given order.
	AddMany(ctx context.Context, events []tracking.Event) error

	// ListByOrderIDs returns every event of the given orders, oldest first.
	// Events with equal timestamps keep their insertion order.
	ListByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) ([]tracking.Event, error)
}
