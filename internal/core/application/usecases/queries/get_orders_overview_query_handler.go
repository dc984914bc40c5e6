package queries

import (
	"context"

	"logistics/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrdersOverviewQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersOverviewQueryHandler(db *gorm.DB) GetOrdersOverviewQueryHandler {
	return GetOrdersOverviewQueryHandler{db: db}
}

func (h GetOrdersOverviewQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersOverviewQuery,
) (GetOrdersOverviewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersOverviewQueryResponse{}, err
	}

	resp := GetOrdersOverviewQueryResponse{ByStatus: make(map[order.Status]int64)}
	for _, s := range order.AllStatuses() {
		resp.ByStatus[s] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status`).Rows()
	if err != nil {
		return GetOrdersOverviewQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name  string
			count int64
		)
		if err = rows.Scan(&name, &count); err != nil {
			return GetOrdersOverviewQueryResponse{}, err
		}
		status, parseErr := order.ParseStatus(name)
		if parseErr != nil {
			return GetOrdersOverviewQueryResponse{}, parseErr
		}
		resp.ByStatus[status] = count
		resp.Total += count
	}

	if err = rows.Err(); err != nil {
		return GetOrdersOverviewQueryResponse{}, err
	}

	return resp, nil
}
