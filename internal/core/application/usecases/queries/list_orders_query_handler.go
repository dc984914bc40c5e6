package queries

import (
	"context"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListOrdersQueryHandler pages through orders with plain SQL.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the requested page, newest order first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where, args, err := listFilter(query)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var total int64
	if err = db.Raw(`SELECT COUNT(*) FROM orders o`+where, args...).Row().Scan(&total); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	resp := ListOrdersQueryResponse{
		Orders: make([]OrderReadModel, 0),
		Total:  total,
		Limit:  query.Limit(),
		Offset: query.Offset(),
	}
	if total == 0 || int64(query.Offset()) >= total {
		return resp, nil
	}

	pageArgs := append(append([]any{}, args...), query.Limit(), query.Offset())
	rows, err := db.Raw(`SELECT`+orderColumns+`
		FROM orders o`+where+`
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?`, pageArgs...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return ListOrdersQueryResponse{}, scanErr
		}
		resp.Orders = append(resp.Orders, o)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return resp, nil
}

// listFilter builds the WHERE clause shared by the count and the page.
func listFilter(query ListOrdersQuery) (string, []any, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 3)

	actor := query.Actor()
	switch actor.Role() {
	case user.RoleManager, user.RoleWarehouse:
	case user.RoleCustomer:
		conditions = append(conditions, "o.customer_id = ?")
		args = append(args, actor.ID().Bytes())
	case user.RoleDriver:
		conditions = append(conditions, "o.assigned_driver_id = ?")
		args = append(args, actor.ID().Bytes())
	default:
		return "", nil, errs.NewBatchError(errs.KindForbidden, fmt.Sprintf("role %s may not read orders", actor.Role()))
	}

	if search := query.Search(); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		conditions = append(conditions, `(CAST(o.id AS text) ILIKE ?
			OR EXISTS (SELECT 1 FROM parcels p WHERE p.order_id = o.id AND p.code ILIKE ?))`)
		args = append(args, pattern, pattern)
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return "\n\t\tWHERE " + strings.Join(conditions, " AND "), args, nil
}
