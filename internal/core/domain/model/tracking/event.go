package tracking

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned by Validate on a zero-value Event.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// EventParams describes an event to record. Optional fields are nil or empty.
// A zero ID makes NewEvent generate one.
type EventParams struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Action      Action
	Status      *order.Status
	ReasonCode  *order.ReasonCode
	Note        string
	Region      string
	WarehouseID *kernel.UUID
	ActorID     *kernel.UUID
	ActorRole   *user.Role
	ParcelID    *kernel.UUID
	OccurredAt  time.Time
}

// Event is one entry of an order's audit trail. Status is the status the
// order held right after the action, or nil for informational actions.
type Event struct {
	id          kernel.UUID
	orderID     kernel.UUID
	action      Action
	status      *order.Status
	reasonCode  *order.ReasonCode
	note        string
	region      string
	warehouseID *kernel.UUID
	actorID     *kernel.UUID
	actorRole   *user.Role
	parcelID    *kernel.UUID
	occurredAt  time.Time

	isConstructed bool
}

// NewEvent validates p and builds an Event.
func NewEvent(p EventParams) (Event, error) {
	if p.ID == (kernel.UUID{}) {
		p.ID = kernel.NewUUID()
	}

	var occurredErr error
	if p.OccurredAt.IsZero() {
		occurredErr = errs.NewValueIsRequiredError("occurredAt")
	}

	var statusErr, reasonErr, roleErr error
	if p.Status != nil {
		statusErr = p.Status.Validate()
	}
	if p.ReasonCode != nil {
		reasonErr = p.ReasonCode.Validate()
	}
	if p.ActorRole != nil {
		roleErr = p.ActorRole.Validate()
	}

	if err := errors.Join(
		p.ID.Validate(),
		p.OrderID.Validate(),
		p.Action.Validate(),
		statusErr,
		reasonErr,
		roleErr,
		occurredErr,
	); err != nil {
		return Event{}, err
	}

	return Event{
		id:            p.ID,
		orderID:       p.OrderID,
		action:        p.Action,
		status:        p.Status,
		reasonCode:    p.ReasonCode,
		note:          strings.TrimSpace(p.Note),
		region:        strings.TrimSpace(p.Region),
		warehouseID:   p.WarehouseID,
		actorID:       p.ActorID,
		actorRole:     p.ActorRole,
		parcelID:      p.ParcelID,
		occurredAt:    p.OccurredAt,
		isConstructed: true,
	}, nil
}

func (e Event) Validate() error {
	if !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e Event) ID() kernel.UUID               { return e.id }
func (e Event) OrderID() kernel.UUID          { return e.orderID }
func (e Event) Action() Action                { return e.action }
func (e Event) Status() *order.Status         { return e.status }
func (e Event) ReasonCode() *order.ReasonCode { return e.reasonCode }
func (e Event) Note() string                  { return e.note }
func (e Event) Region() string                { return e.region }
func (e Event) WarehouseID() *kernel.UUID     { return e.warehouseID }
func (e Event) ActorID() *kernel.UUID         { return e.actorID }
func (e Event) ActorRole() *user.Role         { return e.actorRole }
func (e Event) ParcelID() *kernel.UUID        { return e.parcelID }
func (e Event) OccurredAt() time.Time         { return e.occurredAt }
