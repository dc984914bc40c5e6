package queries

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its parcels and tracking history on
// behalf of an actor. Managers and warehouse staff see every order, customers
// their own, drivers the ones assigned to them.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   user.Actor
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, actor user.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Actor() user.Actor {
	return q.actor
}

// GetOrderQueryResponse is the full view of one order. History is oldest
// first.
type GetOrderQueryResponse struct {
	Order   OrderReadModel
	Parcels []ParcelReadModel
	History []TrackingEventReadModel
}

type ParcelReadModel struct {
	ID   kernel.UUID
	Code string
}

// checkReadable rejects orders outside the actor's scope as forbidden.
func checkReadable(actor user.Actor, o OrderReadModel) error {
	switch actor.Role() {
	case user.RoleManager, user.RoleWarehouse:
		return nil
	case user.RoleCustomer:
		if o.CustomerID.IsEqual(actor.ID()) {
			return nil
		}
		return errs.NewBatchError(errs.KindForbidden, "customers see their own orders only")
	case user.RoleDriver:
		if o.AssignedDriverID != nil && o.AssignedDriverID.IsEqual(actor.ID()) {
			return nil
		}
		return errs.NewBatchError(errs.KindForbidden, "order is not assigned to this driver")
	default:
		return errs.NewBatchError(errs.KindForbidden, fmt.Sprintf("role %s may not read orders", actor.Role()))
	}
}
