package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a shipment. It owns the status of the
// shipment and the bookkeeping the workflow keeps next to it.
//
// Order follows these invariants:
//   - Status only changes along an edge of the transition graph, except for
//     driver assignment which moves an assignable order to Assigned
//   - assignedDriverID only changes through AssignDriver
//   - Attempt counters never decrease
//   - version grows by one with every persisted change
//
// Orders are never deleted.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	createdAt  time.Time

	status Status

	// assignedDriverID is nil until the assignment workflow runs
	assignedDriverID *kernel.UUID

	// currentWarehouseID is set by warehouse arrival scans
	currentWarehouseID *kernel.UUID

	pickupAttemptCount   int
	deliveryAttemptCount int

	lastExceptionReason *ReasonCode
	lastExceptionAt     *time.Time

	// version is the optimistic concurrency token compared on update
	version int

	isConstructed bool
}

// NewOrder registers a new order in Pending status.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, time.Now().UTC())
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.UUID, customerID kernel.UUID, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries the persisted state of an order.
type RestoreParams struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	CreatedAt            time.Time
	Status               Status
	AssignedDriverID     *kernel.UUID
	CurrentWarehouseID   *kernel.UUID
	PickupAttemptCount   int
	DeliveryAttemptCount int
	LastExceptionReason  *ReasonCode
	LastExceptionAt      *time.Time
	Version              int
}

// RestoreOrder rebuilds an order from storage. All fields are validated
// and every violation is reported at once.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		assignedDriverID:    p.AssignedDriverID,
		currentWarehouseID:  p.CurrentWarehouseID,
		lastExceptionReason: p.LastExceptionReason,
		lastExceptionAt:     p.LastExceptionAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setCreatedAt(p.CreatedAt),
		o.setStatus(p.Status),
		validateOptionalID("assignedDriverID", p.AssignedDriverID),
		validateOptionalID("currentWarehouseID", p.CurrentWarehouseID),
		o.setAttemptCounts(p.PickupAttemptCount, p.DeliveryAttemptCount),
		validateOptionalReason(p.LastExceptionReason),
		o.setVersion(p.Version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// AssignedDriverID returns nil while no driver is assigned.
func (o *Order) AssignedDriverID() *kernel.UUID {
	return o.assignedDriverID
}

// IsAssignedTo reports whether driverID is the assigned driver.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.assignedDriverID != nil && o.assignedDriverID.IsEqual(driverID)
}

// CurrentWarehouseID returns nil until the order has arrived at a warehouse.
func (o *Order) CurrentWarehouseID() *kernel.UUID {
	return o.currentWarehouseID
}

func (o *Order) PickupAttemptCount() int {
	return o.pickupAttemptCount
}

func (o *Order) DeliveryAttemptCount() int {
	return o.deliveryAttemptCount
}

func (o *Order) LastExceptionReason() *ReasonCode {
	return o.lastExceptionReason
}

func (o *Order) LastExceptionAt() *time.Time {
	return o.lastExceptionAt
}

// Version returns the concurrency token the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// Transition moves the order to next. It fails with errs.ErrInvalidTransition
// when current -> next is not an edge of the graph.
func (o *Order) Transition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, o.status, next)
	}

	o.status = next
	return nil
}

// AssignDriver attaches driverID and moves the order to Assigned.
// Only Pending and Exception orders can be assigned; any other status
// fails with errs.ErrConflict.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if !o.status.IsAssignable() {
		return fmt.Errorf("%w: order %s is %s", errs.ErrConflict, o.id, o.status)
	}

	o.assignedDriverID = &driverID
	o.status = Assigned
	return nil
}

// MoveToWarehouse records the warehouse that currently holds the parcels.
func (o *Order) MoveToWarehouse(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	o.currentWarehouseID = &warehouseID
	return nil
}

func (o *Order) RecordPickupAttempt() {
	o.pickupAttemptCount++
}

func (o *Order) RecordDeliveryAttempt() {
	o.deliveryAttemptCount++
}

// RecordException stamps the reason and time of the latest exception-class action.
func (o *Order) RecordException(reason ReasonCode, at time.Time) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	o.lastExceptionReason = &reason
	o.lastExceptionAt = &at
	return nil
}

// AdvanceVersion is called by the repository once an update is stored.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = at
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAttemptCounts(pickup, delivery int) error {
	var pickupErr, deliveryErr error
	if pickup < 0 {
		pickupErr = errs.NewValueIsOutOfRangeError("pickupAttemptCount", pickup, 0, math.MaxInt32)
	}
	if delivery < 0 {
		deliveryErr = errs.NewValueIsOutOfRangeError("deliveryAttemptCount", delivery, 0, math.MaxInt32)
	}
	if err := errors.Join(pickupErr, deliveryErr); err != nil {
		return err
	}

	o.pickupAttemptCount = pickup
	o.deliveryAttemptCount = delivery
	return nil
}

func validateOptionalReason(reason *ReasonCode) error {
	if reason == nil {
		return nil
	}
	return reason.Validate()
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, math.MaxInt32)
	}
	o.version = version
	return nil
}

func validateOptionalID(name string, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}
