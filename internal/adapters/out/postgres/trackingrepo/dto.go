// Package trackingrepo is the append-only GORM store of tracking events.
package trackingrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/columns"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// TrackingEventDTO is the row of the tracking_events table. Seq is assigned
// by the database and breaks ties between events with the same timestamp.
type TrackingEventDTO struct {
	Seq         int64      `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_tracking_events_order_time,priority:1"`
	Action      string     `gorm:"type:varchar(32);not null"`
	Status      *string    `gorm:"type:varchar(32)"`
	ReasonCode  *string    `gorm:"type:varchar(32)"`
	Note        *string    `gorm:"type:text"`
	Region      *string    `gorm:"type:varchar(128)"`
	WarehouseID *uuid.UUID `gorm:"type:uuid"`
	ActorID     *uuid.UUID `gorm:"type:uuid"`
	ActorRole   *string    `gorm:"type:varchar(16)"`
	ParcelID    *uuid.UUID `gorm:"type:uuid"`
	OccurredAt  time.Time  `gorm:"type:timestamptz;not null;index:idx_tracking_events_order_time,priority:2"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(e tracking.Event) TrackingEventDTO {
	dto := TrackingEventDTO{
		ID:          e.ID().Bytes(),
		OrderID:     e.OrderID().Bytes(),
		Action:      e.Action().String(),
		Note:        columns.NullableString(e.Note()),
		Region:      columns.NullableString(e.Region()),
		WarehouseID: columns.NullableUUID(e.WarehouseID()),
		ActorID:     columns.NullableUUID(e.ActorID()),
		ParcelID:    columns.NullableUUID(e.ParcelID()),
		OccurredAt:  e.OccurredAt(),
	}
	if s := e.Status(); s != nil {
		dto.Status = columns.NullableString(s.String())
	}
	if r := e.ReasonCode(); r != nil {
		dto.ReasonCode = columns.NullableString(r.String())
	}
	if role := e.ActorRole(); role != nil {
		dto.ActorRole = columns.NullableString(role.String())
	}
	return dto
}

func toDomain(dto TrackingEventDTO) (tracking.Event, error) {
	id, idErr := columns.UUID(dto.ID)
	orderID, orderErr := columns.UUID(dto.OrderID)
	warehouseID, warehouseErr := columns.OptionalUUID(dto.WarehouseID)
	actorID, actorErr := columns.OptionalUUID(dto.ActorID)
	parcelID, parcelErr := columns.OptionalUUID(dto.ParcelID)
	action, actionErr := tracking.ParseAction(dto.Action)

	var status *order.Status
	var statusErr error
	if dto.Status != nil {
		s, err := order.ParseStatus(*dto.Status)
		status, statusErr = &s, err
	}

	var reason *order.ReasonCode
	var reasonErr error
	if dto.ReasonCode != nil {
		r, err := order.ParseReasonCode(*dto.ReasonCode)
		reason, reasonErr = &r, err
	}

	var role *user.Role
	var roleErr error
	if dto.ActorRole != nil {
		r, err := user.ParseRole(*dto.ActorRole)
		role, roleErr = &r, err
	}

	if err := errors.Join(
		idErr, orderErr, warehouseErr, actorErr, parcelErr,
		actionErr, statusErr, reasonErr, roleErr,
	); err != nil {
		return tracking.Event{}, err
	}

	return tracking.NewEvent(tracking.EventParams{
		ID:          id,
		OrderID:     orderID,
		Action:      action,
		Status:      status,
		ReasonCode:  reason,
		Note:        columns.String(dto.Note),
		Region:      columns.String(dto.Region),
		WarehouseID: warehouseID,
		ActorID:     actorID,
		ActorRole:   role,
		ParcelID:    parcelID,
		OccurredAt:  dto.OccurredAt.UTC(),
	})
}
