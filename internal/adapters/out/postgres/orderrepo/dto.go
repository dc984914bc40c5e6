// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/columns"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table. Status and reason are stored by
// name so the table stays readable without the code.
type OrderDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status               string     `gorm:"type:varchar(32);not null;index"`
	AssignedDriverID     *uuid.UUID `gorm:"type:uuid;index"`
	CurrentWarehouseID   *uuid.UUID `gorm:"type:uuid;index"`
	PickupAttemptCount   int        `gorm:"type:int;not null;default:0"`
	DeliveryAttemptCount int        `gorm:"type:int;not null;default:0"`
	LastExceptionReason  *string    `gorm:"type:varchar(32)"`
	LastExceptionAt      *time.Time `gorm:"type:timestamptz"`
	Version              int        `gorm:"type:int;not null;default:1"`
	CreatedAt            time.Time  `gorm:"type:timestamptz;not null;index"`
	UpdatedAt            time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName overrides GORM's default "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var reason *string
	if r := o.LastExceptionReason(); r != nil {
		s := r.String()
		reason = &s
	}

	return OrderDTO{
		ID:                   o.ID().Bytes(),
		CustomerID:           o.CustomerID().Bytes(),
		Status:               o.Status().String(),
		AssignedDriverID:     columns.NullableUUID(o.AssignedDriverID()),
		CurrentWarehouseID:   columns.NullableUUID(o.CurrentWarehouseID()),
		PickupAttemptCount:   o.PickupAttemptCount(),
		DeliveryAttemptCount: o.DeliveryAttemptCount(),
		LastExceptionReason:  reason,
		LastExceptionAt:      o.LastExceptionAt(),
		Version:              o.Version(),
		CreatedAt:            o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := columns.UUID(dto.ID)
	customerID, customerErr := columns.UUID(dto.CustomerID)
	driverID, driverErr := columns.OptionalUUID(dto.AssignedDriverID)
	warehouseID, warehouseErr := columns.OptionalUUID(dto.CurrentWarehouseID)
	status, statusErr := order.ParseStatus(dto.Status)

	var reason *order.ReasonCode
	var reasonErr error
	if dto.LastExceptionReason != nil {
		code, err := order.ParseReasonCode(*dto.LastExceptionReason)
		reason, reasonErr = &code, err
	}

	if err := errors.Join(idErr, customerErr, driverErr, warehouseErr, statusErr, reasonErr); err != nil {
		return nil, err
	}

	var lastExceptionAt *time.Time
	if dto.LastExceptionAt != nil {
		at := dto.LastExceptionAt.UTC()
		lastExceptionAt = &at
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                   id,
		CustomerID:           customerID,
		CreatedAt:            dto.CreatedAt.UTC(),
		Status:               status,
		AssignedDriverID:     driverID,
		CurrentWarehouseID:   warehouseID,
		PickupAttemptCount:   dto.PickupAttemptCount,
		DeliveryAttemptCount: dto.DeliveryAttemptCount,
		LastExceptionReason:  reason,
		LastExceptionAt:      lastExceptionAt,
		Version:              dto.Version,
	})
}
