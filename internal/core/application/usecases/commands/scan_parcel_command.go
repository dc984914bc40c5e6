package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/guard"
)

var ErrScanParcelCommandIsNotConstructed = errors.New(
	"ScanParcelCommand must be created via NewScanParcelCommand constructor",
)

// ScanParcelCommand is a warehouse scan of one parcel label. The scan is
// recorded against the parcel's order.
type ScanParcelCommand struct {
	actor       user.Actor
	parcelCode  string
	action      tracking.Action
	warehouseID *kernel.UUID
	reasonCode  *order.ReasonCode
	note        string
	region      string

	guard guard.ConstructorGuard
}

// ScanParcelParams are the optional inputs of a scan.
type ScanParcelParams struct {
	WarehouseID *kernel.UUID
	ReasonCode  *order.ReasonCode
	Note        string
	Region      string
}

// NewScanParcelCommand creates the command. The parcel code is normalized.
func NewScanParcelCommand(
	actor user.Actor,
	parcelCode string,
	action tracking.Action,
	params ScanParcelParams,
) ScanParcelCommand {
	return ScanParcelCommand{
		actor:       actor,
		parcelCode:  parcel.NormalizeCode(parcelCode),
		action:      action,
		warehouseID: params.WarehouseID,
		reasonCode:  params.ReasonCode,
		note:        strings.TrimSpace(params.Note),
		region:      strings.TrimSpace(params.Region),
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ScanParcelCommand) Validate() error {
	return c.guard.Validate(ErrScanParcelCommandIsNotConstructed)
}

func (c ScanParcelCommand) Actor() user.Actor {
	return c.actor
}

func (c ScanParcelCommand) ParcelCode() string {
	return c.parcelCode
}

func (c ScanParcelCommand) Action() tracking.Action {
	return c.action
}

func (c ScanParcelCommand) WarehouseID() *kernel.UUID {
	return c.warehouseID
}
