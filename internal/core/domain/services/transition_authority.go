package services

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

var driverActions = []tracking.Action{
	tracking.PickupStarted,
	tracking.PickupAttempt,
	tracking.PickupConfirmed,
	tracking.PickupFailed,
	tracking.DeliveryStarted,
	tracking.DeliveryAttempt,
	tracking.Delivered,
	tracking.DeliveryFailed,
	tracking.ReturnRequested,
	tracking.ReturnDispatched,
	tracking.ReturnDelivered,
}

var warehouseActions = []tracking.Action{
	tracking.ArrivedAtWarehouse,
	tracking.Sorted,
	tracking.Dispatched,
	tracking.OnHold,
}

var roleActions = map[user.Role][]tracking.Action{
	user.RoleCustomer:  {},
	user.RoleDriver:    driverActions,
	user.RoleWarehouse: warehouseActions,
	user.RoleManager: append(append([]tracking.Action{
		tracking.DriverAssigned,
		tracking.DriverRejected,
		tracking.Cancelled,
	}, driverActions...), warehouseActions...),
}

var actionStatuses = map[tracking.Action]order.Status{
	tracking.DriverAssigned:     order.Assigned,
	tracking.PickupStarted:      order.PickupInProgress,
	tracking.PickupConfirmed:    order.PickedUp,
	tracking.ArrivedAtWarehouse: order.AtWarehouse,
	tracking.Dispatched:         order.InTransit,
	tracking.DeliveryStarted:    order.OutForDelivery,
	tracking.Delivered:          order.Delivered,
	tracking.PickupFailed:       order.Exception,
	tracking.DeliveryFailed:     order.Exception,
	tracking.OnHold:             order.Exception,
	tracking.Cancelled:          order.Cancelled,
	tracking.ReturnRequested:    order.ReturnInProgress,
	tracking.ReturnDispatched:   order.ReturnInProgress,
	tracking.ReturnDelivered:    order.Returned,
}

var reasonRequiredActions = map[tracking.Action]struct{}{
	tracking.PickupFailed:    {},
	tracking.DeliveryFailed:  {},
	tracking.OnHold:          {},
	tracking.Cancelled:       {},
	tracking.ReturnRequested: {},
}

// TransitionParams are the optional inputs of a workflow action.
type TransitionParams struct {
	ReasonCode  *order.ReasonCode
	Note        string
	Region      string
	WarehouseID *kernel.UUID
	ParcelID    *kernel.UUID
}

// TransitionAuthority decides whether an actor may record an action against
// a set of orders, and what the action does to them. It holds the role
// allow-lists, the action-to-status table and the validation rules. It has no
// state and performs no I/O.
//
// Rules are checked in a fixed order and the first failing rule rejects the
// whole batch. Each rule reports every offending order, not only the first.
//
// Example usage:
//
//	authority := services.NewTransitionAuthority()
//	plan, err := authority.ValidateBatch(actor, tracking.PickupStarted, orders, params)
//	if err != nil {
//	    return err // *errs.BatchError
//	}
//	for _, o := range orders {
//	    if err := plan.Apply(o, now); err != nil {
//	        return err
//	    }
//	}
type TransitionAuthority struct{}

// NewTransitionAuthority creates a TransitionAuthority.
func NewTransitionAuthority() TransitionAuthority {
	return TransitionAuthority{}
}

// IsActionAllowedForRole reports whether role may record action at all.
func (TransitionAuthority) IsActionAllowedForRole(role user.Role, action tracking.Action) bool {
	for _, allowed := range roleActions[role] {
		if allowed == action {
			return true
		}
	}
	return false
}

// ResultingStatus returns the status an action moves orders to. The second
// result is false for informational actions that leave the status alone.
func (TransitionAuthority) ResultingStatus(action tracking.Action) (order.Status, bool) {
	s, ok := actionStatuses[action]
	return s, ok
}

// IsTransitionLegal reports whether current -> next is an edge of the status graph.
func (TransitionAuthority) IsTransitionLegal(current, next order.Status) bool {
	return current.CanTransitionTo(next)
}

// ActionRequiresReasonCode reports whether action must carry a reason code.
// The same actions stamp the order's last exception.
func (TransitionAuthority) ActionRequiresReasonCode(action tracking.Action) bool {
	_, ok := reasonRequiredActions[action]
	return ok
}

// IsWarehouseAction reports whether action targets a warehouse and needs its id.
func (TransitionAuthority) IsWarehouseAction(action tracking.Action) bool {
	for _, a := range warehouseActions {
		if a == action {
			return true
		}
	}
	return false
}

// ValidateRequest runs the checks that need no order state: id list, actor,
// action, reason code, role permission and the reserved assignment action.
// Callers run it before touching storage.
func (ta TransitionAuthority) ValidateRequest(
	actor user.Actor,
	action tracking.Action,
	orderIDs []kernel.UUID,
	params TransitionParams,
) error {
	if len(orderIDs) == 0 {
		return errs.NewBatchError(errs.KindInvalidInput, "order ids are required")
	}

	if err := actor.Validate(); err != nil {
		return errs.NewBatchError(errs.KindInvalidInput, err.Error())
	}

	if err := action.Validate(); err != nil {
		return errs.NewBatchError(errs.KindInvalidInput, err.Error())
	}

	if params.ReasonCode != nil {
		if err := params.ReasonCode.Validate(); err != nil {
			return errs.NewBatchError(errs.KindInvalidInput, err.Error())
		}
	}

	if ta.ActionRequiresReasonCode(action) && params.ReasonCode == nil {
		return errs.NewBatchError(errs.KindInvalidInput,
			fmt.Sprintf("reason code is required for %s", action))
	}

	if !ta.IsActionAllowedForRole(actor.Role(), action) {
		return errs.NewBatchError(errs.KindForbidden,
			fmt.Sprintf("role %s is not allowed to perform %s", actor.Role(), action))
	}

	if action == tracking.DriverAssigned {
		return errs.NewBatchError(errs.KindInvalidInput,
			fmt.Sprintf("%s is recorded by driver assignment, use the assignment operation", action))
	}

	return nil
}

// ValidateBatch runs ValidateRequest and then the checks that depend on the
// current state of orders. On success it returns the Plan to apply to each order.
func (ta TransitionAuthority) ValidateBatch(
	actor user.Actor,
	action tracking.Action,
	orders []*order.Order,
	params TransitionParams,
) (Plan, error) {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Plan{}, err
		}
		ids = append(ids, o.ID())
	}

	if err := ta.ValidateRequest(actor, action, ids, params); err != nil {
		return Plan{}, err
	}

	if err := checkNotTerminal(orders); err != nil {
		return Plan{}, err
	}

	if err := checkDriverOwnership(actor, orders); err != nil {
		return Plan{}, err
	}

	if err := checkWarehouseScope(actor, orders); err != nil {
		return Plan{}, err
	}

	next, changesStatus := ta.ResultingStatus(action)
	if changesStatus {
		if err := ta.checkTransitions(orders, next); err != nil {
			return Plan{}, err
		}
	}

	effectiveWarehouseID := params.WarehouseID
	if effectiveWarehouseID == nil {
		effectiveWarehouseID = actor.WarehouseID()
	}

	if ta.IsWarehouseAction(action) && effectiveWarehouseID == nil {
		return Plan{}, errs.NewBatchError(errs.KindInvalidInput,
			fmt.Sprintf("warehouse id is required for %s", action))
	}

	trackingWarehouseID := params.WarehouseID
	if trackingWarehouseID == nil && (ta.IsWarehouseAction(action) || actor.Role() == user.RoleWarehouse) {
		trackingWarehouseID = effectiveWarehouseID
	}

	plan := Plan{
		action:               action,
		actor:                actor,
		params:               params,
		stampsException:      ta.ActionRequiresReasonCode(action),
		effectiveWarehouseID: effectiveWarehouseID,
		trackingWarehouseID:  trackingWarehouseID,
	}
	if changesStatus {
		plan.nextStatus = &next
	}

	return plan, nil
}

func checkNotTerminal(orders []*order.Order) error {
	var violations []errs.Violation
	for _, o := range orders {
		if o.Status().IsTerminal() {
			violations = append(violations, errs.Violation{ID: o.ID().String(), Detail: o.Status().String()})
		}
	}
	if len(violations) > 0 {
		return errs.NewBatchError(errs.KindConflict, "orders are already in a final status", violations...)
	}
	return nil
}

func checkDriverOwnership(actor user.Actor, orders []*order.Order) error {
	if actor.Role() != user.RoleDriver {
		return nil
	}

	var violations []errs.Violation
	for _, o := range orders {
		if !o.IsAssignedTo(actor.ID()) {
			violations = append(violations, errs.Violation{ID: o.ID().String()})
		}
	}
	if len(violations) > 0 {
		return errs.NewBatchError(errs.KindForbidden, "orders are not assigned to this driver", violations...)
	}
	return nil
}

func checkWarehouseScope(actor user.Actor, orders []*order.Order) error {
	home := actor.WarehouseID()
	if actor.Role() != user.RoleWarehouse || home == nil {
		return nil
	}

	var violations []errs.Violation
	for _, o := range orders {
		current := o.CurrentWarehouseID()
		if current != nil && !current.IsEqual(*home) {
			violations = append(violations, errs.Violation{ID: o.ID().String(), Detail: "at " + current.String()})
		}
	}
	if len(violations) > 0 {
		return errs.NewBatchError(errs.KindForbidden, "orders are held by another warehouse", violations...)
	}
	return nil
}

func (ta TransitionAuthority) checkTransitions(orders []*order.Order, next order.Status) error {
	var violations []errs.Violation
	for _, o := range orders {
		if !ta.IsTransitionLegal(o.Status(), next) {
			violations = append(violations, errs.Violation{
				ID:     o.ID().String(),
				Detail: fmt.Sprintf("%s -> %s", o.Status(), next),
			})
		}
	}
	if len(violations) > 0 {
		return errs.NewBatchError(errs.KindInvalidTransition, "invalid status transition", violations...)
	}
	return nil
}
