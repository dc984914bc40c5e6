package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// UpdateOrdersStatusCommandHandler executes workflow actions on batches of orders.
//
// Steps, all inside one transaction:
//  1. stateless checks (before any storage access)
//  2. load orders; any missing id fails the batch with NotFound
//  3. state checks by the transition authority
//  4. apply the plan and store every order with a version check
//  5. append one tracking event and one outbox message per order
//
// After commit the orders are re-read with their full history.
//
// Example:
//
//	handler := NewUpdateOrdersStatusCommandHandler(uowFactory)
//	views, err := handler.Handle(ctx, cmd)
//	switch errs.KindOf(err) {
//	case errs.KindForbidden:
//	    // 403
//	case errs.KindNotFound:
//	    // 404
//	}
type UpdateOrdersStatusCommandHandler struct {
	uowFactory UoWFactory
	authority  services.TransitionAuthority
	clock      func() time.Time
}

// NewUpdateOrdersStatusCommandHandler creates the handler.
func NewUpdateOrdersStatusCommandHandler(uowFactory UoWFactory) UpdateOrdersStatusCommandHandler {
	return UpdateOrdersStatusCommandHandler{
		uowFactory: uowFactory,
		authority:  services.NewTransitionAuthority(),
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle validates and applies the command. Rejections are *errs.BatchError.
func (h UpdateOrdersStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrdersStatusCommand,
) ([]OrderView, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	ids := command.OrderIDs()
	if err := h.authority.ValidateRequest(command.Actor(), command.Action(), ids, command.Params()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err = requireAllFound(ids, orders); err != nil {
		return nil, err
	}

	plan, err := h.authority.ValidateBatch(command.Actor(), command.Action(), orders, command.Params())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	events := make([]tracking.Event, 0, len(orders))
	messages := make([]*outbox.Message, 0, len(orders))

	for _, o := range orders {
		if err = plan.Apply(o, now); err != nil {
			return nil, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return nil, errs.NewBatchError(errs.KindConflict, "order was modified concurrently",
					errs.Violation{ID: o.ID().String()})
			}
			return nil, err
		}

		event, eventErr := plan.Event(o, now)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)

		message, msgErr := outbox.NewOrderChangedMessage(o, event)
		if msgErr != nil {
			return nil, msgErr
		}
		messages = append(messages, message)
	}

	if err = uow.TrackingRepository().AddMany(ctx, events); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().AddMany(ctx, messages); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return loadOrderViews(ctx, uow.OrderRepository(), uow.TrackingRepository(), ids)
}
