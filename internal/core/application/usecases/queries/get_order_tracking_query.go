package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// GetOrderTrackingQuery retrieves the tracking history of one order.
//
// Example:
//
//	query, err := NewGetOrderTrackingQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	history, err := handler.Handle(ctx, query)
type GetOrderTrackingQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

// NewGetOrderTrackingQuery rejects an empty order id.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTrackingQueryResponse is the order's current status and its
// events, oldest first.
type GetOrderTrackingQueryResponse struct {
	OrderID kernel.UUID
	Status  order.Status
	Events  []TrackingEventReadModel
}

// TrackingEventReadModel is one row of the tracking history.
type TrackingEventReadModel struct {
	ID          kernel.UUID
	Action      tracking.Action
	Status      *order.Status
	ReasonCode  *order.ReasonCode
	Note        string
	Region      string
	WarehouseID *kernel.UUID
	ActorID     *kernel.UUID
	ActorRole   *user.Role
	ParcelID    *kernel.UUID
	OccurredAt  time.Time
}
