package services

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
)

// Plan is the outcome of a successful ValidateBatch: the same change applied
// to every order of the batch, plus the audit event to write for each one.
type Plan struct {
	action     tracking.Action
	actor      user.Actor
	params     TransitionParams
	nextStatus *order.Status

	stampsException      bool
	effectiveWarehouseID *kernel.UUID
	trackingWarehouseID  *kernel.UUID
}

// Action is the workflow action the plan was validated for.
func (p Plan) Action() tracking.Action {
	return p.action
}

// NextStatus returns nil for informational actions.
func (p Plan) NextStatus() *order.Status {
	return p.nextStatus
}

// EffectiveWarehouseID is the explicit warehouse param or the actor's home warehouse.
func (p Plan) EffectiveWarehouseID() *kernel.UUID {
	return p.effectiveWarehouseID
}

// TrackingWarehouseID is the warehouse written on the audit events.
func (p Plan) TrackingWarehouseID() *kernel.UUID {
	return p.trackingWarehouseID
}

// Apply mutates o as the action requires. It runs the order's own
// transition check again, so a plan built for other orders cannot move o
// along an illegal edge.
func (p Plan) Apply(o *order.Order, now time.Time) error {
	if p.nextStatus != nil {
		if err := o.Transition(*p.nextStatus); err != nil {
			return err
		}
	}

	switch p.action {
	case tracking.ArrivedAtWarehouse:
		if p.effectiveWarehouseID != nil {
			if err := o.MoveToWarehouse(*p.effectiveWarehouseID); err != nil {
				return err
			}
		}
	case tracking.PickupAttempt:
		o.RecordPickupAttempt()
	case tracking.DeliveryAttempt:
		o.RecordDeliveryAttempt()
	default:
	}

	if p.stampsException && p.params.ReasonCode != nil {
		if err := o.RecordException(*p.params.ReasonCode, now); err != nil {
			return err
		}
	}

	return nil
}

// Event builds the audit record of the action for o.
func (p Plan) Event(o *order.Order, now time.Time) (tracking.Event, error) {
	actorID := p.actor.ID()
	actorRole := p.actor.Role()

	return tracking.NewEvent(tracking.EventParams{
		OrderID:     o.ID(),
		Action:      p.action,
		Status:      p.nextStatus,
		ReasonCode:  p.params.ReasonCode,
		Note:        p.params.Note,
		Region:      p.params.Region,
		WarehouseID: p.trackingWarehouseID,
		ActorID:     &actorID,
		ActorRole:   &actorRole,
		ParcelID:    p.params.ParcelID,
		OccurredAt:  now,
	})
}
