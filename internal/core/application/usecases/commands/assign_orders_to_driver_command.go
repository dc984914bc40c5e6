package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/guard"
)

var ErrAssignOrdersToDriverCommandIsNotConstructed = errors.New(
	"AssignOrdersToDriverCommand must be created via NewAssignOrdersToDriverCommand constructor",
)

// AssignOrdersToDriverCommand attaches one driver to a batch of orders.
// This is the only operation that changes an order's assigned driver.
//
// Example:
//
//	cmd := NewAssignOrdersToDriverCommand(ids, driverID, &manager)
//	views, err := handler.Handle(ctx, cmd)
type AssignOrdersToDriverCommand struct {
	orderIDs []kernel.UUID
	driverID kernel.UUID
	actor    *user.Actor

	guard guard.ConstructorGuard
}

// NewAssignOrdersToDriverCommand creates the command. actor is optional and is
// only written to the tracking events. Duplicate order ids are dropped.
func NewAssignOrdersToDriverCommand(
	orderIDs []kernel.UUID,
	driverID kernel.UUID,
	actor *user.Actor,
) AssignOrdersToDriverCommand {
	return AssignOrdersToDriverCommand{
		orderIDs: kernel.DistinctUUIDs(orderIDs),
		driverID: driverID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AssignOrdersToDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersToDriverCommandIsNotConstructed)
}

func (c AssignOrdersToDriverCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c AssignOrdersToDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Actor returns nil when the assignment was not made on behalf of a user.
func (c AssignOrdersToDriverCommand) Actor() *user.Actor {
	return c.actor
}
