package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driver := newActor(t, user.RoleDriver, nil)
	o := restoreOrder(t, orderFixture{status: order.Assigned, driverID: uuidPtr(driver.ID())})
	ids := orderIDs(o)

	history := []tracking.Event{}
	m := newWorkflowMocks()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.orders.On("GetMany", ctx, ids).Return([]*order.Order{o}, nil).Twice()
	m.orders.On("Update", ctx, o).Return(nil).Once()
	m.tracking.On("AddMany", ctx, mock.Anything).Return(nil).Once()
	m.outbox.On("AddMany", ctx, mock.Anything).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
	m.tracking.On("ListByOrderIDs", ctx, ids).Return(history, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	batch := commands.NewUpdateOrdersStatusCommandHandler(m.factory)
	handler := commands.NewUpdateOrderStatusCommandHandler(batch)
	cmd := commands.NewUpdateOrderStatusCommand(driver, o.ID(), tracking.PickupStarted, services.TransitionParams{})

	view, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, o, view.Order)
	assert.Equal(t, order.PickupInProgress, view.Order.Status())
	m.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ZeroID(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewUpdateOrderStatusCommandHandler(commands.NewUpdateOrdersStatusCommandHandler(factory))
	cmd := commands.NewUpdateOrderStatusCommand(newActor(t, user.RoleManager, nil), kernel.UUID{},
		tracking.Sorted, services.TransitionParams{})

	_, err := handler.Handle(t.Context(), cmd)

	requireBatchError(t, err, errs.KindInvalidInput)
	factory.AssertNotCalled(t, "Create")
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewUpdateOrderStatusCommandHandler(commands.NewUpdateOrdersStatusCommandHandler(factory))

	_, err := handler.Handle(t.Context(), commands.UpdateOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}
