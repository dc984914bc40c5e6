package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order, its parcels and its history with
// plain SQL.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	switch errs.KindOf(err) {
//	case errs.KindNotFound, errs.KindForbidden:
//	    // unknown order, or someone else's
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order and a forbidden
// *errs.BatchError for an order outside the actor's scope.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	row := db.Raw(`SELECT`+orderColumns+`
		FROM orders o
		WHERE o.id = ?`, query.OrderID().Bytes()).Row()
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = checkReadable(query.Actor(), o); err != nil {
		return GetOrderQueryResponse{}, err
	}

	parcels, err := h.loadParcels(db, o)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	history, err := loadTrackingEvents(db, o.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		Order:   o,
		Parcels: parcels,
		History: history,
	}, nil
}

func (h GetOrderQueryHandler) loadParcels(db *gorm.DB, o OrderReadModel) ([]ParcelReadModel, error) {
	rows, err := db.Raw(`
		SELECT id, code
		FROM parcels
		WHERE order_id = ?
		ORDER BY code`, o.ID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]ParcelReadModel, 0)
	for rows.Next() {
		var (
			p  ParcelReadModel
			id uuid.UUID
		)
		if err = rows.Scan(&id, &p.Code); err != nil {
			return nil, err
		}
		if p.ID, err = idFromColumn(id); err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return parcels, nil
}
