package commands_test

import (
	"errors"
	"strings"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, 2, customerActor(t, customerID))
	require.NoError(t, err)

	var parcels []*parcel.Parcel
	var messages []*outbox.Message
	m := newWorkflowMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		m.parcels.On("AddMany", ctx, mock.MatchedBy(func(p []*parcel.Parcel) bool {
			parcels = p
			return true
		})).Return(nil).Once(),
		m.tracking.On("AddMany", ctx, mock.Anything).Return(nil).Once(),
		m.outbox.On("AddMany", ctx, mock.MatchedBy(func(msgs []*outbox.Message) bool {
			messages = msgs
			return true
		})).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(m.factory)
	view, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, orderID, view.Order.ID())
	assert.Equal(t, customerID, view.Order.CustomerID())
	assert.Equal(t, order.Pending, view.Order.Status())
	assert.Nil(t, view.Order.AssignedDriverID())

	require.Len(t, view.History, 1)
	created := view.History[0]
	assert.Equal(t, tracking.OrderCreated, created.Action())
	require.NotNil(t, created.Status())
	assert.Equal(t, order.Pending, *created.Status())
	require.NotNil(t, created.ActorRole())
	assert.Equal(t, user.RoleCustomer, *created.ActorRole())
	require.NotNil(t, created.ActorID())
	assert.Equal(t, customerID, *created.ActorID())

	require.Len(t, parcels, 2)
	assert.NotEqual(t, parcels[0].Code(), parcels[1].Code())
	for _, p := range parcels {
		assert.Equal(t, orderID, p.OrderID())
		assert.True(t, strings.HasPrefix(p.Code(), "PCL-"))
	}

	require.Len(t, messages, 1)
	assert.Equal(t, outbox.OrderChangedEventType, messages[0].EventType())
	assert.Equal(t, orderID, messages[0].AggregateID())
	m.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 1, newActor(t, user.RoleManager, nil))
	require.NoError(t, err)

	m := newWorkflowMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("duplicate key")).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(m.factory)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "duplicate key")
	m.parcels.AssertNotCalled(t, "AddMany", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	m.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 1, newActor(t, user.RoleManager, nil))
	require.NoError(t, err)

	m := newWorkflowMocks()
	m.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	handler := commands.NewCreateOrderCommandHandler(m.factory)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_ManagerRegistersForCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	manager := newActor(t, user.RoleManager, nil)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, 1, manager)
	require.NoError(t, err)

	var events []tracking.Event
	m := newWorkflowMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		m.parcels.On("AddMany", ctx, mock.Anything).Return(nil).Once(),
		m.tracking.On("AddMany", ctx, mock.MatchedBy(func(e []tracking.Event) bool {
			events = e
			return true
		})).Return(nil).Once(),
		m.outbox.On("AddMany", ctx, mock.Anything).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	view, err := commands.NewCreateOrderCommandHandler(m.factory).Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, customerID, view.Order.CustomerID())
	require.Len(t, events, 1)
	created := events[0]
	require.NotNil(t, created.ActorID())
	assert.Equal(t, manager.ID(), *created.ActorID())
	assert.False(t, created.ActorID().IsEqual(customerID))
	require.NotNil(t, created.ActorRole())
	assert.Equal(t, user.RoleManager, *created.ActorRole())
	m.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RejectsRegistrant(t *testing.T) {
	customerID := kernel.NewUUID()

	tests := []struct {
		name  string
		actor user.Actor
	}{
		{"customer for another customer", newActor(t, user.RoleCustomer, nil)},
		{"driver", newActor(t, user.RoleDriver, nil)},
		{"warehouse staff", newActor(t, user.RoleWarehouse, uuidPtr(kernel.NewUUID()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, 1, tt.actor)
			require.NoError(t, err)
			factory := new(MockUoWFactory)

			_, err = commands.NewCreateOrderCommandHandler(factory).Handle(t.Context(), cmd)

			assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func customerActor(t *testing.T, customerID kernel.UUID) user.Actor {
	t.Helper()

	actor, err := user.NewActor(customerID, user.RoleCustomer, nil)
	require.NoError(t, err)
	return actor
}
