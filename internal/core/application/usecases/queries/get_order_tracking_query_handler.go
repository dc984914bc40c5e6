package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads an order's tracking history straight
// from the tracking_events table.
//
// Example:
//
//	handler := NewGetOrderTrackingQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var status string
	err := db.Raw(`SELECT status FROM orders WHERE id = ?`, query.OrderID().Bytes()).Row().Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	current, err := order.ParseStatus(status)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	events, err := loadTrackingEvents(db, query.OrderID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	return GetOrderTrackingQueryResponse{
		OrderID: query.OrderID(),
		Status:  current,
		Events:  events,
	}, nil
}

func scanTrackingEvent(rows rowScanner) (TrackingEventReadModel, error) {
	var (
		id                             uuid.UUID
		action                         string
		status, reasonCode, actorRole  sql.NullString
		note, region                   sql.NullString
		warehouseID, actorID, parcelID uuid.NullUUID
		occurredAt                     time.Time
	)

	if err := rows.Scan(
		&id,
		&action,
		&status,
		&reasonCode,
		&note,
		&region,
		&warehouseID,
		&actorID,
		&actorRole,
		&parcelID,
		&occurredAt,
	); err != nil {
		return TrackingEventReadModel{}, err
	}

	event := TrackingEventReadModel{
		Note:       note.String,
		Region:     region.String,
		OccurredAt: occurredAt.UTC(),
	}

	var err error
	if event.ID, err = idFromColumn(id); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.Action, err = tracking.ParseAction(action); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.Status, err = optionalFromColumn(status, order.ParseStatus); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.ReasonCode, err = optionalFromColumn(reasonCode, order.ParseReasonCode); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.ActorRole, err = optionalFromColumn(actorRole, user.ParseRole); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.WarehouseID, err = optionalIDFromColumn(warehouseID); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.ActorID, err = optionalIDFromColumn(actorID); err != nil {
		return TrackingEventReadModel{}, err
	}
	if event.ParcelID, err = optionalIDFromColumn(parcelID); err != nil {
		return TrackingEventReadModel{}, err
	}

	return event, nil
}
