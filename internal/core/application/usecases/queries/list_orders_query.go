package queries

import (
	"errors"
	"math"
	"strings"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	DefaultListOrdersLimit = 50
	MaxListOrdersLimit     = 200
	maxSearchLength        = 128
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery pages through the orders an actor may see, newest first.
// Customers get their own orders and drivers the orders assigned to them.
// Search matches the order id or a parcel code by substring.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, 50, 0, "PCL-")
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor  user.Actor
	limit  int
	offset int
	search string
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery uses DefaultListOrdersLimit for a zero limit and caps
// larger limits at MaxListOrdersLimit.
func NewListOrdersQuery(actor user.Actor, limit, offset int, search string) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	if limit < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxListOrdersLimit)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, math.MaxInt)
	}
	search = strings.TrimSpace(search)
	if len(search) > maxSearchLength {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("q", len(search), 0, maxSearchLength)
	}

	switch {
	case limit == 0:
		limit = DefaultListOrdersLimit
	case limit > MaxListOrdersLimit:
		limit = MaxListOrdersLimit
	}

	return ListOrdersQuery{
		actor:  actor,
		limit:  limit,
		offset: offset,
		search: search,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() user.Actor {
	return q.actor
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}

func (q ListOrdersQuery) Search() string {
	return q.search
}

// ListOrdersQueryResponse is one page. Total counts every matching order.
type ListOrdersQueryResponse struct {
	Orders []OrderReadModel
	Total  int64
	Limit  int
	Offset int
}
