package queries

import (
	"database/sql"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderReadModel is one row of the orders table.
type OrderReadModel struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	Status               order.Status
	AssignedDriverID     *kernel.UUID
	CurrentWarehouseID   *kernel.UUID
	PickupAttemptCount   int
	DeliveryAttemptCount int
	LastExceptionReason  *order.ReasonCode
	LastExceptionAt      *time.Time
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// orderColumns matches the scan order of scanOrder.
const orderColumns = `
			o.id,
			o.customer_id,
			o.status,
			o.assigned_driver_id,
			o.current_warehouse_id,
			o.pickup_attempt_count,
			o.delivery_attempt_count,
			o.last_exception_reason,
			o.last_exception_at,
			o.version,
			o.created_at,
			o.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderReadModel, error) {
	var (
		resp                  OrderReadModel
		id, customerID        uuid.UUID
		driverID, warehouseID uuid.NullUUID
		status                string
		lastReason            sql.NullString
		lastExceptionAt       sql.NullTime
		createdAt, updatedAt  time.Time
	)

	if err := row.Scan(
		&id,
		&customerID,
		&status,
		&driverID,
		&warehouseID,
		&resp.PickupAttemptCount,
		&resp.DeliveryAttemptCount,
		&lastReason,
		&lastExceptionAt,
		&resp.Version,
		&createdAt,
		&updatedAt,
	); err != nil {
		return OrderReadModel{}, err
	}

	var err error
	if resp.ID, err = idFromColumn(id); err != nil {
		return OrderReadModel{}, err
	}
	if resp.CustomerID, err = idFromColumn(customerID); err != nil {
		return OrderReadModel{}, err
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return OrderReadModel{}, err
	}
	if resp.AssignedDriverID, err = optionalIDFromColumn(driverID); err != nil {
		return OrderReadModel{}, err
	}
	if resp.CurrentWarehouseID, err = optionalIDFromColumn(warehouseID); err != nil {
		return OrderReadModel{}, err
	}
	if resp.LastExceptionReason, err = optionalFromColumn(lastReason, order.ParseReasonCode); err != nil {
		return OrderReadModel{}, err
	}
	if lastExceptionAt.Valid {
		at := lastExceptionAt.Time.UTC()
		resp.LastExceptionAt = &at
	}
	resp.CreatedAt = createdAt.UTC()
	resp.UpdatedAt = updatedAt.UTC()

	return resp, nil
}

// loadTrackingEvents returns an order's events, oldest first. Events with the
// same timestamp keep their insertion order.
func loadTrackingEvents(db *gorm.DB, orderID kernel.UUID) ([]TrackingEventReadModel, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			action,
			status,
			reason_code,
			note,
			region,
			warehouse_id,
			actor_id,
			actor_role,
			parcel_id,
			occurred_at
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY occurred_at, seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEventReadModel, 0)
	for rows.Next() {
		event, scanErr := scanTrackingEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
