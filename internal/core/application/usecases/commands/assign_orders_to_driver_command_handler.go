package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

// AssignOrdersToDriverCommandHandler runs the driver assignment workflow.
//
// The driver must exist and have the driver role. Every order must exist
// and be pending or in exception. Then, in one transaction, each order gets
// the driver and status assigned, plus one DRIVER_ASSIGNED tracking event
// and one outbox message.
type AssignOrdersToDriverCommandHandler struct {
	uowFactory UoWFactory
	clock      func() time.Time
}

func NewAssignOrdersToDriverCommandHandler(uowFactory UoWFactory) AssignOrdersToDriverCommandHandler {
	return AssignOrdersToDriverCommandHandler{
		uowFactory: uowFactory,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle assigns the driver and returns the refreshed orders, newest first.
func (h AssignOrdersToDriverCommandHandler) Handle(
	ctx context.Context,
	command AssignOrdersToDriverCommand,
) ([]OrderView, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	ids := command.OrderIDs()
	if len(ids) == 0 {
		return nil, errs.NewBatchError(errs.KindInvalidInput, "order ids are required")
	}
	if err := command.DriverID().Validate(); err != nil {
		return nil, errs.NewBatchError(errs.KindInvalidInput, "driver id is required")
	}
	if actor := command.Actor(); actor != nil {
		if err := actor.Validate(); err != nil {
			return nil, errs.NewBatchError(errs.KindInvalidInput, err.Error())
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driver, err := uow.UserRepository().Get(ctx, command.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewBatchError(errs.KindNotFound, "driver not found",
			errs.Violation{ID: command.DriverID().String()})
	}
	if err != nil {
		return nil, err
	}
	if !driver.IsDriver() {
		return nil, errs.NewBatchError(errs.KindInvalidInput, "user is not a driver",
			errs.Violation{ID: driver.ID().String(), Detail: driver.Role().String()})
	}

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err = requireAllFound(ids, orders); err != nil {
		return nil, err
	}
	if err = checkAssignable(orders); err != nil {
		return nil, err
	}

	now := h.clock()
	events := make([]tracking.Event, 0, len(orders))
	messages := make([]*outbox.Message, 0, len(orders))

	for _, o := range orders {
		if err = o.AssignDriver(driver.ID()); err != nil {
			return nil, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return nil, errs.NewBatchError(errs.KindConflict, "order was modified concurrently",
					errs.Violation{ID: o.ID().String()})
			}
			return nil, err
		}

		event, eventErr := assignmentEvent(o, driver.ID(), command.Actor(), now)
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

func checkAssignable(orders []*order.Order) error {
	var violations []errs.Violation
	for _, o := range orders {
		if !o.Status().IsAssignable() {
			violations = append(violations, errs.Violation{ID: o.ID().String(), Detail: o.Status().String()})
		}
	}
	if len(violations) > 0 {
		return errs.NewBatchError(errs.KindConflict, "orders cannot be assigned in their current status", violations...)
	}
	return nil
}

func assignmentEvent(o *order.Order, driverID kernel.UUID, actor *user.Actor, now time.Time) (tracking.Event, error) {
	status := order.Assigned
	params := tracking.EventParams{
		OrderID:    o.ID(),
		Action:     tracking.DriverAssigned,
		Status:     &status,
		Note:       "Assigned to driver " + driverID.String(),
		OccurredAt: now,
	}

	if actor != nil {
		actorID := actor.ID()
		actorRole := actor.Role()
		params.ActorID = &actorID
		params.ActorRole = &actorRole
	}

	return tracking.NewEvent(params)
}
