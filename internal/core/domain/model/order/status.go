package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Happy path:
//
//	pending ──> assigned ──> pickup_in_progress ──> picked_up ──> at_warehouse ──> in_transit
//	in_transit ──> out_for_delivery ──> delivered
//
// Every other non-final status can fall into exception; exception resumes into
// pickup_in_progress, in_transit, out_for_delivery, return_in_progress or
// cancelled. delivered, returned and cancelled are final. The complete
// adjacency lives in allowedTransitions.
type Status int

const (
	// Unknown is the invalid zero value.
	Unknown Status = iota

	// Pending is the status of a freshly registered order.
	Pending

	// Assigned means a driver has been attached to the order.
	Assigned

	// PickupInProgress means a driver is on the way to collect the parcels.
	PickupInProgress

	// PickedUp means the parcels are with the driver.
	PickedUp

	// AtWarehouse means the parcels were scanned in at a warehouse.
	AtWarehouse

	// InTransit means the parcels left the warehouse or the pickup point.
	InTransit

	// OutForDelivery means a driver is on the last mile.
	OutForDelivery

	// Delivered is final.
	Delivered

	// Exception means the order is blocked by a failure or a hold.
	Exception

	// ReturnInProgress means the parcels travel back to the sender.
	ReturnInProgress

	// Returned is final.
	Returned

	// Cancelled is final.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:          "pending",
	Assigned:         "assigned",
	PickupInProgress: "pickup_in_progress",
	PickedUp:         "picked_up",
	AtWarehouse:      "at_warehouse",
	InTransit:        "in_transit",
	OutForDelivery:   "out_for_delivery",
	Delivered:        "delivered",
	Exception:        "exception",
	ReturnInProgress: "return_in_progress",
	Returned:         "returned",
	Cancelled:        "cancelled",
}

var allowedTransitions = map[Status][]Status{
	Pending:          {Assigned, PickupInProgress, Cancelled, Exception},
	Assigned:         {PickupInProgress, Cancelled, Exception},
	PickupInProgress: {PickedUp, Exception, Cancelled},
	PickedUp:         {AtWarehouse, InTransit, Exception},
	AtWarehouse:      {InTransit, Exception},
	InTransit:        {OutForDelivery, Exception},
	OutForDelivery:   {Delivered, Exception, ReturnInProgress},
	Exception:        {PickupInProgress, InTransit, OutForDelivery, ReturnInProgress, Cancelled},
	ReturnInProgress: {Returned, Exception},
	Delivered:        {},
	Returned:         {},
	Cancelled:        {},
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		Pending, Assigned, PickupInProgress, PickedUp, AtWarehouse, InTransit,
		OutForDelivery, Delivered, Exception, ReturnInProgress, Returned, Cancelled,
	}
}

// ParseStatus converts the wire name of a status ("picked_up") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate returns an error for Unknown and any value outside the enum.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled
}

// IsAssignable reports whether a driver may be assigned in this status.
func (s Status) IsAssignable() bool {
	return s == Pending || s == Exception
}

// CanTransitionTo reports whether s -> next is an edge of the transition graph.
// Self-transitions are not edges.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	next := allowedTransitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
