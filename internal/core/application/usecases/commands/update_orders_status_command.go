package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/guard"
)

var ErrUpdateOrdersStatusCommandIsNotConstructed = errors.New(
	"UpdateOrdersStatusCommand must be created via NewUpdateOrdersStatusCommand constructor",
)

// UpdateOrdersStatusCommand records one action against a batch of orders.
// The batch is all-or-nothing: either every order takes the action or none does.
//
// Example:
//
//	reason := order.ReasonCustomerRequest
//	cmd := NewUpdateOrdersStatusCommand(actor, ids, tracking.Cancelled,
//	    services.TransitionParams{ReasonCode: &reason})
//	views, err := handler.Handle(ctx, cmd)
type UpdateOrdersStatusCommand struct {
	actor    user.Actor
	orderIDs []kernel.UUID
	action   tracking.Action
	params   services.TransitionParams

	guard guard.ConstructorGuard
}

// NewUpdateOrdersStatusCommand creates the command. Duplicate ids are dropped,
// keeping the first occurrence. Content is validated by the handler so that
// every rejection carries its workflow error kind.
func NewUpdateOrdersStatusCommand(
	actor user.Actor,
	orderIDs []kernel.UUID,
	action tracking.Action,
	params services.TransitionParams,
) UpdateOrdersStatusCommand {
	return UpdateOrdersStatusCommand{
		actor:    actor,
		orderIDs: kernel.DistinctUUIDs(orderIDs),
		action:   action,
		params:   params,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrdersStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrdersStatusCommandIsNotConstructed)
}

func (c UpdateOrdersStatusCommand) Actor() user.Actor {
	return c.actor
}

func (c UpdateOrdersStatusCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c UpdateOrdersStatusCommand) Action() tracking.Action {
	return c.action
}

func (c UpdateOrdersStatusCommand) Params() services.TransitionParams {
	return c.params
}
