package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves every order that has not reached a final
// status, optionally narrowed to one driver's orders. Managers use it as the
// dispatch overview.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(nil)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active orders: %w", err)
//	}
//	fmt.Printf("%d orders in flight\n", len(orders))
type GetActiveOrdersQuery struct {
	driverID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetActiveOrdersQuery takes a nil driverID to list all drivers' orders.
func NewGetActiveOrdersQuery(driverID *kernel.UUID) (GetActiveOrdersQuery, error) {
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetActiveOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("driverID", err)
		}
	}

	return GetActiveOrdersQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// GetActiveOrdersQueryResponse is the read model of an order in flight.
type GetActiveOrdersQueryResponse = OrderReadModel
