package queries

import (
	"context"

	"logistics/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads active orders with plain SQL, bypassing
// the aggregate.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns orders outside the final statuses, newest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	final := make([]string, 0)
	for _, s := range order.AllStatuses() {
		if s.IsTerminal() {
			final = append(final, s.String())
		}
	}

	db := h.db.WithContext(ctx)
	sqlText := `
		SELECT` + orderColumns + `
		FROM orders o
		WHERE o.status NOT IN ?`
	args := []any{final}
	if driverID := query.DriverID(); driverID != nil {
		sqlText += ` AND o.assigned_driver_id = ?`
		args = append(args, driverID.Bytes())
	}
	sqlText += `
		ORDER BY o.created_at DESC, o.id`

	rows, err := db.Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
