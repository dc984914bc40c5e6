package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// OrderView is an order as returned by workflow commands: its state after the
// command and its complete tracking history, oldest event first.
type OrderView struct {
	Order   *order.Order
	History []tracking.Event
}

// loadOrderViews re-reads orders and their history, newest-created order first.
func loadOrderViews(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	trackingRepo ports.TrackingRepository,
	ids []kernel.UUID,
) ([]OrderView, error) {
	orders, err := orderRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	events, err := trackingRepo.ListByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[string][]tracking.Event, len(orders))
	for _, e := range events {
		key := e.OrderID().String()
		byOrder[key] = append(byOrder[key], e)
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		history := byOrder[o.ID().String()]
		if history == nil {
			history = []tracking.Event{}
		}
		views = append(views, OrderView{Order: o, History: history})
	}
	return views, nil
}

// requireAllFound fails with a NotFound batch error listing every id that is
// not among orders.
func requireAllFound(ids []kernel.UUID, orders []*order.Order) error {
	found := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		found[o.ID().String()] = struct{}{}
	}

	var violations []errs.Violation
	for _, id := range ids {
		if _, ok := found[id.String()]; !ok {
			violations = append(violations, errs.Violation{ID: id.String()})
		}
	}
	if len(violations) > 0 {
		return errs.NewBatchError(errs.KindNotFound, "orders not found", violations...)
	}
	return nil
}
