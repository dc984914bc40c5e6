package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

// CreateOrderCommandHandler registers orders. A new order is pending, owns
// ParcelCount parcels with generated scan codes and starts its history with
// an ORDER_CREATED event attributed to the caller.
//
// Customers register orders for themselves only. Managers register orders
// on behalf of any customer. Other roles are rejected with Forbidden.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customerID, 1, actor)
//
//	view, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// view.Order is pending and waits for a driver
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle stores the order, its parcels, the first tracking event and the
// matching outbox message in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return OrderView{}, err
	}

	if err := checkRegistrant(cmd); err != nil {
		return OrderView{}, err
	}

	now := h.clock()

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), now)
	if err != nil {
		return OrderView{}, err
	}

	parcels := make([]*parcel.Parcel, 0, cmd.ParcelCount())
	for i := range cmd.ParcelCount() {
		p, parcelErr := parcel.NewParcel(kernel.NewUUID(), o.ID(), parcel.GenerateCode(o.ID(), i))
		if parcelErr != nil {
			return OrderView{}, parcelErr
		}
		parcels = append(parcels, p)
	}

	status := o.Status()
	actorID := cmd.Actor().ID()
	actorRole := cmd.Actor().Role()
	event, err := tracking.NewEvent(tracking.EventParams{
		OrderID:    o.ID(),
		Action:     tracking.OrderCreated,
		Status:     &status,
		ActorID:    &actorID,
		ActorRole:  &actorRole,
		OccurredAt: now,
	})
	if err != nil {
		return OrderView{}, err
	}

	message, err := outbox.NewOrderChangedMessage(o, event)
	if err != nil {
		return OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return OrderView{}, err
	}

	if err = uow.ParcelRepository().AddMany(ctx, parcels); err != nil {
		return OrderView{}, err
	}

	if err = uow.TrackingRepository().AddMany(ctx, []tracking.Event{event}); err != nil {
		return OrderView{}, err
	}

	if err = uow.OutboxRepository().AddMany(ctx, []*outbox.Message{message}); err != nil {
		return OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderView{}, err
	}

	return OrderView{Order: o, History: []tracking.Event{event}}, nil
}

func checkRegistrant(cmd CreateOrderCommand) error {
	actor := cmd.Actor()
	switch actor.Role() {
	case user.RoleManager:
		return nil
	case user.RoleCustomer:
		if actor.ID().IsEqual(cmd.CustomerID()) {
			return nil
		}
		return errs.NewBatchError(errs.KindForbidden, "customers register orders for themselves only")
	default:
		return errs.NewBatchError(errs.KindForbidden,
			fmt.Sprintf("role %s is not allowed to register orders", actor.Role()))
	}
}
