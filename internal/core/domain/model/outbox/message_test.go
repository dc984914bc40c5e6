package outbox_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("valid message", func(t *testing.T) {
		aggregateID := kernel.NewUUID()
		m, err := outbox.NewMessage("order.changed", aggregateID, []byte(`{}`), time.Now())

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.AggregateID().IsEqual(aggregateID))
		assert.False(t, m.IsPublished())
		assert.Zero(t, m.Attempts())
	})

	t.Run("reports every missing field", func(t *testing.T) {
		_, err := outbox.NewMessage(" ", kernel.UUID{}, nil, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "eventType")
		assert.Contains(t, err.Error(), "payload")
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestMessage_Delivery(t *testing.T) {
	m, err := outbox.NewMessage("order.changed", kernel.NewUUID(), []byte(`{}`), time.Now())
	require.NoError(t, err)

	m.MarkFailed(errors.New("broker down"))
	assert.Equal(t, 1, m.Attempts())
	assert.Equal(t, "broker down", m.LastError())
	assert.False(t, m.IsPublished())

	at := time.Now().UTC()
	m.MarkPublished(at)
	assert.Equal(t, 2, m.Attempts())
	assert.Empty(t, m.LastError())
	assert.Equal(t, at, *m.PublishedAt())
}

func TestNewOrderChangedMessage(t *testing.T) {
	driverID := kernel.NewUUID()
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:               kernel.NewUUID(),
		CustomerID:       kernel.NewUUID(),
		CreatedAt:        time.Now().UTC(),
		Status:           order.PickupInProgress,
		AssignedDriverID: &driverID,
		Version:          2,
	})
	require.NoError(t, err)

	status := order.PickupInProgress
	role := user.RoleDriver
	event, err := tracking.NewEvent(tracking.EventParams{
		OrderID:    o.ID(),
		Action:     tracking.PickupStarted,
		Status:     &status,
		ActorID:    &driverID,
		ActorRole:  &role,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	m, err := outbox.NewOrderChangedMessage(o, event)
	require.NoError(t, err)
	assert.Equal(t, outbox.OrderChangedEventType, m.EventType())
	assert.True(t, m.AggregateID().IsEqual(o.ID()))

	var payload outbox.OrderChangedPayload
	require.NoError(t, json.Unmarshal(m.Payload(), &payload))
	assert.Equal(t, event.ID().String(), payload.EventID)
	assert.Equal(t, "PICKUP_STARTED", payload.Action)
	assert.Equal(t, "pickup_in_progress", payload.Status)
	assert.Equal(t, driverID.String(), *payload.AssignedDriverID)
	assert.Equal(t, "driver", *payload.ActorRole)
	assert.Nil(t, payload.WarehouseID)
	assert.Nil(t, payload.ReasonCode)
}
