package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MaxParcelsPerOrder caps the number of parcels registered with one order.
const MaxParcelsPerOrder = 50

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new shipment order with its parcels.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, 2, actor)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	view, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	parcelCount int
	actor       user.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order data. actor is the caller who
// registers the order and is recorded on its first tracking event. Every
// invalid field is reported at once.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	parcelCount int,
	actor user.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setParcelCount(parcelCount),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ParcelCount is the number of parcels to label, at least one.
func (c CreateOrderCommand) ParcelCount() int {
	return c.parcelCount
}

func (c CreateOrderCommand) Actor() user.Actor {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setParcelCount(count int) error {
	if count < 1 || count > MaxParcelsPerOrder {
		return errs.NewValueIsOutOfRangeError("parcelCount", count, 1, MaxParcelsPerOrder)
	}
	c.parcelCount = count
	return nil
}

func (c *CreateOrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	c.actor = actor
	return nil
}
