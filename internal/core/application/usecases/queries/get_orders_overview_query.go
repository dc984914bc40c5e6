package queries

import (
	"errors"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetOrdersOverviewQueryIsNotConstructed = errors.New(
		"GetOrdersOverviewQuery must be created via NewGetOrdersOverviewQuery constructor",
	)
)

// GetOrdersOverviewQuery counts orders per status for the manager dashboard.
type GetOrdersOverviewQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrdersOverviewQuery() GetOrdersOverviewQuery {
	return GetOrdersOverviewQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrdersOverviewQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersOverviewQueryIsNotConstructed)
}

// GetOrdersOverviewQueryResponse holds a count for every status, zero
// included.
type GetOrdersOverviewQueryResponse struct {
	Total    int64
	ByStatus map[order.Status]int64
}
