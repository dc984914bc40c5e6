package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

var scanActions = map[tracking.Action]struct{}{
	tracking.ArrivedAtWarehouse: {},
	tracking.Sorted:             {},
	tracking.Dispatched:         {},
	tracking.OnHold:             {},
}

// ScanParcelCommandHandler resolves a scanned parcel to its order and records
// the scan through UpdateOrderStatusCommandHandler, so scans obey every rule
// of the status workflow.
//
// The warehouse of the scan is the actor's home warehouse for warehouse staff.
// Managers may name one; otherwise the order's current warehouse is used.
type ScanParcelCommandHandler struct {
	uowFactory UoWFactory
	update     UpdateOrderStatusCommandHandler
}

func NewScanParcelCommandHandler(
	uowFactory UoWFactory,
	update UpdateOrderStatusCommandHandler,
) ScanParcelCommandHandler {
	return ScanParcelCommandHandler{
		uowFactory: uowFactory,
		update:     update,
	}
}

// Handle records the scan and returns the refreshed order.
func (h ScanParcelCommandHandler) Handle(ctx context.Context, command ScanParcelCommand) (OrderView, error) {
	if err := command.Validate(); err != nil {
		return OrderView{}, err
	}

	actor := command.Actor()
	if err := actor.Validate(); err != nil {
		return OrderView{}, errs.NewBatchError(errs.KindInvalidInput, err.Error())
	}
	if actor.Role() != user.RoleWarehouse && actor.Role() != user.RoleManager {
		return OrderView{}, errs.NewBatchError(errs.KindForbidden,
			fmt.Sprintf("role %s is not allowed to scan parcels", actor.Role()))
	}
	if command.ParcelCode() == "" {
		return OrderView{}, errs.NewBatchError(errs.KindInvalidInput, "parcel code is required")
	}
	if _, ok := scanActions[command.Action()]; !ok {
		return OrderView{}, errs.NewBatchError(errs.KindInvalidInput,
			fmt.Sprintf("%s is not a scan action", command.Action()))
	}
	if actor.Role() == user.RoleWarehouse && actor.WarehouseID() == nil {
		return OrderView{}, errs.NewBatchError(errs.KindInvalidInput, "warehouse user has no home warehouse")
	}

	// Lookups run outside a transaction; the update opens its own.
	uow := h.uowFactory.Create()

	p, err := uow.ParcelRepository().GetByCode(ctx, command.ParcelCode())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OrderView{}, errs.NewBatchError(errs.KindNotFound, "parcel not found",
			errs.Violation{ID: command.ParcelCode()})
	}
	if err != nil {
		return OrderView{}, err
	}

	o, err := uow.OrderRepository().Get(ctx, p.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OrderView{}, errs.NewBatchError(errs.KindNotFound, "orders not found",
			errs.Violation{ID: p.OrderID().String()})
	}
	if err != nil {
		return OrderView{}, err
	}

	parcelID := p.ID()
	update := NewUpdateOrderStatusCommand(actor, o.ID(), command.Action(), services.TransitionParams{
		ReasonCode:  command.reasonCode,
		Note:        command.note,
		Region:      command.region,
		WarehouseID: scanWarehouse(actor, command.WarehouseID(), o),
		ParcelID:    &parcelID,
	})

	return h.update.Handle(ctx, update)
}

func scanWarehouse(actor user.Actor, requested *kernel.UUID, o *order.Order) *kernel.UUID {
	if actor.Role() == user.RoleWarehouse {
		return actor.WarehouseID()
	}
	if requested != nil {
		return requested
	}
	return o.CurrentWarehouseID()
}
