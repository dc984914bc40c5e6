package tracking

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Action is a named workflow event an actor can record against orders.
// Which actions change status, and for whom they are allowed, is decided by
// the transition authority in the services package.
type Action int

const (
	// UnknownAction is the invalid zero value.
	UnknownAction Action = iota
	OrderCreated
	DriverAssigned
	DriverRejected
	PickupStarted
	PickupAttempt
	PickupConfirmed
	PickupFailed
	ArrivedAtWarehouse
	Sorted
	Dispatched
	DeliveryStarted
	DeliveryAttempt
	Delivered
	DeliveryFailed
	OnHold
	Cancelled
	ReturnRequested
	ReturnDispatched
	ReturnDelivered
)

var actionNames = map[Action]string{
	OrderCreated:       "ORDER_CREATED",
	DriverAssigned:     "DRIVER_ASSIGNED",
	DriverRejected:     "DRIVER_REJECTED",
	PickupStarted:      "PICKUP_STARTED",
	PickupAttempt:      "PICKUP_ATTEMPT",
	PickupConfirmed:    "PICKUP_CONFIRMED",
	PickupFailed:       "PICKUP_FAILED",
	ArrivedAtWarehouse: "ARRIVED_AT_WAREHOUSE",
	Sorted:             "SORTED",
	Dispatched:         "DISPATCHED",
	DeliveryStarted:    "DELIVERY_STARTED",
	DeliveryAttempt:    "DELIVERY_ATTEMPT",
	Delivered:          "DELIVERED",
	DeliveryFailed:     "DELIVERY_FAILED",
	OnHold:             "ON_HOLD",
	Cancelled:          "CANCELLED",
	ReturnRequested:    "RETURN_REQUESTED",
	ReturnDispatched:   "RETURN_DISPATCHED",
	ReturnDelivered:    "RETURN_DELIVERED",
}

// AllActions returns every valid action.
func AllActions() []Action {
	out := make([]Action, 0, len(actionNames))
	for a := OrderCreated; a <= ReturnDelivered; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction converts a wire name such as "PICKUP_STARTED" into an Action.
// An empty string is reported as a missing value.
func ParseAction(s string) (Action, error) {
	if s == "" {
		return UnknownAction, errs.NewValueIsRequiredError("action")
	}
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
}

func (a Action) Validate() error {
	if a == UnknownAction {
		return errs.NewValueIsRequiredError("action")
	}
	if _, ok := actionNames[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}
