package commands

import (
	"context"

	"logistics/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler is the single-order form of
// UpdateOrdersStatusCommandHandler. It shares every rule and error.
type UpdateOrderStatusCommandHandler struct {
	batch UpdateOrdersStatusCommandHandler
}

// NewUpdateOrderStatusCommandHandler wraps the batch handler.
func NewUpdateOrderStatusCommandHandler(batch UpdateOrdersStatusCommandHandler) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{batch: batch}
}

// Handle applies the action and returns the refreshed order.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) (OrderView, error) {
	if err := command.Validate(); err != nil {
		return OrderView{}, err
	}

	views, err := h.batch.Handle(ctx, command.toBatch())
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", command.OrderID().String())
	}

	return views[0], nil
}
