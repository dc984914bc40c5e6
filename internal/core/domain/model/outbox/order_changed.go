package outbox

import (
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"

	"github.com/goccy/go-json"
)

// OrderChangedEventType is the event type of messages produced by workflow actions.
const OrderChangedEventType = "order.changed"

// OrderChangedPayload is the JSON body published for every tracking event.
type OrderChangedPayload struct {
	EventID          string     `json:"eventId"`
	OrderID          string     `json:"orderId"`
	Action           string     `json:"action"`
	Status           string     `json:"status"`
	AssignedDriverID *string    `json:"assignedDriverId,omitempty"`
	WarehouseID      *string    `json:"warehouseId,omitempty"`
	ReasonCode       *string    `json:"reasonCode,omitempty"`
	ActorID          *string    `json:"actorId,omitempty"`
	ActorRole        *string    `json:"actorRole,omitempty"`
	ParcelID         *string    `json:"parcelId,omitempty"`
	LastExceptionAt  *time.Time `json:"lastExceptionAt,omitempty"`
	OccurredAt       time.Time  `json:"occurredAt"`
}

// NewOrderChangedMessage builds the notification for event, using o as it
// stands after the action.
func NewOrderChangedMessage(o *order.Order, event tracking.Event) (*Message, error) {
	payload := OrderChangedPayload{
		EventID:         event.ID().String(),
		OrderID:         o.ID().String(),
		Action:          event.Action().String(),
		Status:          o.Status().String(),
		LastExceptionAt: o.LastExceptionAt(),
		OccurredAt:      event.OccurredAt(),
	}
	if id := o.AssignedDriverID(); id != nil {
		payload.AssignedDriverID = stringPtr(id.String())
	}
	if id := event.WarehouseID(); id != nil {
		payload.WarehouseID = stringPtr(id.String())
	}
	if code := event.ReasonCode(); code != nil {
		payload.ReasonCode = stringPtr(code.String())
	}
	if id := event.ActorID(); id != nil {
		payload.ActorID = stringPtr(id.String())
	}
	if role := event.ActorRole(); role != nil {
		payload.ActorRole = stringPtr(role.String())
	}
	if id := event.ParcelID(); id != nil {
		payload.ParcelID = stringPtr(id.String())
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return NewMessage(OrderChangedEventType, o.ID(), body, event.OccurredAt())
}

func stringPtr(s string) *string {
	return &s
}
