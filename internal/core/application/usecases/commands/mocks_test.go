package commands_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/outbox"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) AddMany(ctx context.Context, events []tracking.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockTrackingRepository) ListByOrderIDs(ctx context.Context, ids []kernel.UUID) ([]tracking.Event, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracking.Event), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) AddMany(ctx context.Context, parcels []*parcel.Parcel) error {
	args := m.Called(ctx, parcels)
	return args.Error(0)
}

func (m *MockParcelRepository) GetByCode(ctx context.Context, code string) (*parcel.Parcel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) AddMany(ctx context.Context, messages []*outbox.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetPending(ctx context.Context, limit, maxAttempts int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit, maxAttempts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

// workflowMocks bundles a unit of work whose repository getters may be
// called any number of times.
type workflowMocks struct {
	factory  *MockUoWFactory
	uow      *MockUoW
	orders   *MockOrderRepository
	tracking *MockTrackingRepository
	users    *MockUserRepository
	parcels  *MockParcelRepository
	outbox   *MockOutboxRepository
}

func newWorkflowMocks() workflowMocks {
	m := workflowMocks{
		factory:  new(MockUoWFactory),
		uow:      new(MockUoW),
		orders:   new(MockOrderRepository),
		tracking: new(MockTrackingRepository),
		users:    new(MockUserRepository),
		parcels:  new(MockParcelRepository),
		outbox:   new(MockOutboxRepository),
	}

	m.factory.On("Create").Return(m.uow)
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	m.uow.On("TrackingRepository").Return(m.tracking).Maybe()
	m.uow.On("UserRepository").Return(m.users).Maybe()
	m.uow.On("ParcelRepository").Return(m.parcels).Maybe()
	m.uow.On("OutboxRepository").Return(m.outbox).Maybe()
	return m
}

func (m workflowMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.uow.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.tracking.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.parcels.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

type orderFixture struct {
	status    order.Status
	driverID  *kernel.UUID
	warehouse *kernel.UUID
}

func restoreOrder(t *testing.T, f orderFixture) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:                 kernel.NewUUID(),
		CustomerID:         kernel.NewUUID(),
		CreatedAt:          time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:             f.status,
		AssignedDriverID:   f.driverID,
		CurrentWarehouseID: f.warehouse,
		Version:            1,
	})
	require.NoError(t, err)
	return o
}

func newActor(t *testing.T, role user.Role, warehouseID *kernel.UUID) user.Actor {
	t.Helper()

	actor, err := user.NewActor(kernel.NewUUID(), role, warehouseID)
	require.NoError(t, err)
	return actor
}

func orderIDs(orders ...*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}

func uuidPtr(id kernel.UUID) *kernel.UUID {
	return &id
}

func reasonPtr(code order.ReasonCode) *order.ReasonCode {
	return &code
}
