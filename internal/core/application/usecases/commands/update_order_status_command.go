package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand records one action against a single order.
type UpdateOrderStatusCommand struct {
	actor   user.Actor
	orderID kernel.UUID
	action  tracking.Action
	params  services.TransitionParams

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates the command.
func NewUpdateOrderStatusCommand(
	actor user.Actor,
	orderID kernel.UUID,
	action tracking.Action,
	params services.TransitionParams,
) UpdateOrderStatusCommand {
	return UpdateOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		action:  action,
		params:  params,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// toBatch turns the command into a batch of one. A zero order id becomes an
// empty batch so it is rejected like any other missing id list.
func (c UpdateOrderStatusCommand) toBatch() UpdateOrdersStatusCommand {
	var ids []kernel.UUID
	if c.orderID.Validate() == nil {
		ids = []kernel.UUID{c.orderID}
	}
	return NewUpdateOrdersStatusCommand(c.actor, ids, c.action, c.params)
}
