package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/postgrestest"
	"logistics/internal/adapters/out/postgres/trackingrepo"
	"logistics/internal/adapters/out/postgres/userrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	orderRepo    *orderrepo.GormOrderRepository
	trackingRepo *trackingrepo.GormTrackingRepository
	userRepo     *userrepo.GormUserRepository
	parcelRepo   *parcelrepo.GormParcelRepository
	base         time.Time
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := postgrestest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)

	suite.db = db
	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.trackingRepo = trackingrepo.NewGormTrackingRepository(db)
	suite.userRepo = userrepo.NewGormUserRepository(db)
	suite.parcelRepo = parcelrepo.NewGormParcelRepository(db)
	suite.base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(postgrestest.Truncate(suite.db))
}

// addOrder stores an order created at base+offset and moves it along path.
func (suite *QueriesIntegrationTestSuite) addOrder(offset time.Duration, driverID *kernel.UUID, path ...order.Status) *order.Order {
	ctx := context.Background()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), suite.base.Add(offset))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	if driverID == nil && len(path) == 0 {
		return o
	}
	if driverID != nil {
		suite.Require().NoError(o.AssignDriver(*driverID))
	}
	for _, next := range path {
		suite.Require().NoError(o.Transition(next))
	}
	suite.Require().NoError(suite.orderRepo.Update(ctx, o))
	return o
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTracking_ReturnsEventsOldestFirst() {
	ctx := context.Background()
	driverID := kernel.NewUUID()
	o := suite.addOrder(0, &driverID)

	actorID := kernel.NewUUID()
	role := user.RoleDriver
	reason := order.ReasonWeather
	pending := order.Pending
	assigned := order.Assigned

	created, err := tracking.NewEvent(tracking.EventParams{
		OrderID: o.ID(), Action: tracking.OrderCreated, Status: &pending, OccurredAt: suite.base,
	})
	suite.Require().NoError(err)
	assignedEvent, err := tracking.NewEvent(tracking.EventParams{
		OrderID: o.ID(), Action: tracking.DriverAssigned, Status: &assigned, OccurredAt: suite.base.Add(time.Minute),
	})
	suite.Require().NoError(err)
	attempt, err := tracking.NewEvent(tracking.EventParams{
		OrderID:    o.ID(),
		Action:     tracking.PickupAttempt,
		ReasonCode: &reason,
		Note:       "gate closed",
		Region:     "north",
		ActorID:    &actorID,
		ActorRole:  &role,
		OccurredAt: suite.base.Add(2 * time.Minute),
	})
	suite.Require().NoError(err)

	other := suite.addOrder(time.Second, nil)
	noise, err := tracking.NewEvent(tracking.EventParams{
		OrderID: other.ID(), Action: tracking.OrderCreated, Status: &pending, OccurredAt: suite.base,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.trackingRepo.AddMany(ctx, []tracking.Event{attempt, noise}))
	suite.Require().NoError(suite.trackingRepo.AddMany(ctx, []tracking.Event{created, assignedEvent}))

	query, err := queries.NewGetOrderTrackingQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := queries.NewGetOrderTrackingQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), resp.OrderID)
	suite.Equal(order.Assigned, resp.Status)
	suite.Require().Len(resp.Events, 3)
	suite.Equal(created.ID(), resp.Events[0].ID)
	suite.Equal(assignedEvent.ID(), resp.Events[1].ID)

	last := resp.Events[2]
	suite.Equal(attempt.ID(), last.ID)
	suite.Equal(tracking.PickupAttempt, last.Action)
	suite.Nil(last.Status)
	suite.Require().NotNil(last.ReasonCode)
	suite.Equal(order.ReasonWeather, *last.ReasonCode)
	suite.Equal("gate closed", last.Note)
	suite.Equal("north", last.Region)
	suite.Require().NotNil(last.ActorID)
	suite.Equal(actorID, *last.ActorID)
	suite.Require().NotNil(last.ActorRole)
	suite.Equal(user.RoleDriver, *last.ActorRole)
	suite.Nil(last.WarehouseID)
	suite.True(suite.base.Add(2 * time.Minute).Equal(last.OccurredAt))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTracking_OrderWithoutEvents() {
	o := suite.addOrder(0, nil)
	query, err := queries.NewGetOrderTrackingQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := queries.NewGetOrderTrackingQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(resp.Events)
	suite.Empty(resp.Events)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTracking_UnknownOrder() {
	query, err := queries.NewGetOrderTrackingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderTrackingQueryHandler(suite.db).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetActiveOrders_ExcludesFinalStatusesNewestFirst() {
	driverID := kernel.NewUUID()
	oldest := suite.addOrder(0, nil)
	assigned := suite.addOrder(time.Minute, &driverID)
	suite.addOrder(2*time.Minute, nil, order.Cancelled)
	newest := suite.addOrder(3*time.Minute, nil, order.Exception)

	query, err := queries.NewGetActiveOrdersQuery(nil)
	suite.Require().NoError(err)

	orders, err := queries.NewGetActiveOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 3)
	suite.Equal(newest.ID(), orders[0].ID)
	suite.Equal(order.Exception, orders[0].Status)
	suite.Equal(assigned.ID(), orders[1].ID)
	suite.Require().NotNil(orders[1].AssignedDriverID)
	suite.Equal(driverID, *orders[1].AssignedDriverID)
	suite.Equal(oldest.ID(), orders[2].ID)
	suite.Equal(oldest.CustomerID(), orders[2].CustomerID)
	suite.Nil(orders[2].AssignedDriverID)
}

func (suite *QueriesIntegrationTestSuite) TestGetActiveOrders_FilteredByDriver() {
	driverID := kernel.NewUUID()
	otherDriverID := kernel.NewUUID()
	mine := suite.addOrder(0, &driverID, order.PickupInProgress)
	suite.addOrder(time.Minute, &otherDriverID)
	suite.addOrder(2*time.Minute, nil)

	query, err := queries.NewGetActiveOrdersQuery(&driverID)
	suite.Require().NoError(err)

	orders, err := queries.NewGetActiveOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 1)
	suite.Equal(mine.ID(), orders[0].ID)
	suite.Equal(order.PickupInProgress, orders[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestGetAllDrivers_OnlyDriversSortedByName() {
	ctx := context.Background()
	warehouseID := kernel.NewUUID()
	add := func(name string, role user.Role, warehouse *kernel.UUID) *user.User {
		u, err := user.NewUser(kernel.NewUUID(), name, role, warehouse)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.userRepo.Add(ctx, u))
		return u
	}
	zoe := add("Zoe", user.RoleDriver, nil)
	add("Mia", user.RoleManager, nil)
	add("Ada", user.RoleWarehouse, &warehouseID)
	bob := add("Bob", user.RoleDriver, nil)

	drivers, err := queries.NewGetAllDriversQueryHandler(suite.db).Handle(ctx, queries.NewGetAllDriversQuery())
	suite.Require().NoError(err)

	suite.Require().Len(drivers, 2)
	suite.Equal(bob.ID(), drivers[0].ID)
	suite.Equal("Bob", drivers[0].Name)
	suite.Equal(zoe.ID(), drivers[1].ID)
}

func (suite *QueriesIntegrationTestSuite) actor(role user.Role, id kernel.UUID) user.Actor {
	var warehouseID *kernel.UUID
	if role == user.RoleWarehouse {
		w := kernel.NewUUID()
		warehouseID = &w
	}
	actor, err := user.NewActor(id, role, warehouseID)
	suite.Require().NoError(err)
	return actor
}

// addCustomerOrder stores a pending order of customerID with the given parcel codes.
func (suite *QueriesIntegrationTestSuite) addCustomerOrder(offset time.Duration, customerID kernel.UUID, codes ...string) *order.Order {
	ctx := context.Background()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, suite.base.Add(offset))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	parcels := make([]*parcel.Parcel, 0, len(codes))
	for _, code := range codes {
		p, err := parcel.NewParcel(kernel.NewUUID(), o.ID(), code)
		suite.Require().NoError(err)
		parcels = append(parcels, p)
	}
	suite.Require().NoError(suite.parcelRepo.AddMany(ctx, parcels))
	return o
}

func (suite *QueriesIntegrationTestSuite) getOrder(orderID kernel.UUID, actor user.Actor) (queries.GetOrderQueryResponse, error) {
	query, err := queries.NewGetOrderQuery(orderID, actor)
	suite.Require().NoError(err)
	return queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ReturnsParcelsAndHistory() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	o := suite.addCustomerOrder(0, customerID, "PCL-B", "PCL-A")

	pending := order.Pending
	created, err := tracking.NewEvent(tracking.EventParams{
		OrderID: o.ID(), Action: tracking.OrderCreated, Status: &pending, OccurredAt: suite.base,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.trackingRepo.AddMany(ctx, []tracking.Event{created}))

	resp, err := suite.getOrder(o.ID(), suite.actor(user.RoleCustomer, customerID))
	suite.Require().NoError(err)

	suite.Equal(o.ID(), resp.Order.ID)
	suite.Equal(customerID, resp.Order.CustomerID)
	suite.Equal(order.Pending, resp.Order.Status)
	suite.Equal(1, resp.Order.Version)
	suite.Nil(resp.Order.LastExceptionAt)
	suite.Require().Len(resp.Parcels, 2)
	suite.Equal("PCL-A", resp.Parcels[0].Code)
	suite.Equal("PCL-B", resp.Parcels[1].Code)
	suite.Require().Len(resp.History, 1)
	suite.Equal(created.ID(), resp.History[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ScopedByRole() {
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	o := suite.addCustomerOrder(0, customerID)
	suite.Require().NoError(o.AssignDriver(driverID))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), o))

	allowed := []user.Actor{
		suite.actor(user.RoleManager, kernel.NewUUID()),
		suite.actor(user.RoleWarehouse, kernel.NewUUID()),
		suite.actor(user.RoleCustomer, customerID),
		suite.actor(user.RoleDriver, driverID),
	}
	for _, actor := range allowed {
		_, err := suite.getOrder(o.ID(), actor)
		suite.NoError(err, string(actor.Role()))
	}

	denied := []user.Actor{
		suite.actor(user.RoleCustomer, kernel.NewUUID()),
		suite.actor(user.RoleDriver, kernel.NewUUID()),
	}
	for _, actor := range denied {
		_, err := suite.getOrder(o.ID(), actor)
		suite.Equal(errs.KindForbidden, errs.KindOf(err), string(actor.Role()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_UnknownOrder() {
	_, err := suite.getOrder(kernel.NewUUID(), suite.actor(user.RoleManager, kernel.NewUUID()))

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_PagesNewestFirst() {
	ids := make([]kernel.UUID, 0, 5)
	for i := range 5 {
		ids = append(ids, suite.addCustomerOrder(time.Duration(i)*time.Minute, kernel.NewUUID()).ID())
	}

	query, err := queries.NewListOrdersQuery(suite.actor(user.RoleManager, kernel.NewUUID()), 2, 1, "")
	suite.Require().NoError(err)

	page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(5), page.Total)
	suite.Equal(2, page.Limit)
	suite.Equal(1, page.Offset)
	suite.Require().Len(page.Orders, 2)
	suite.Equal(ids[3], page.Orders[0].ID)
	suite.Equal(ids[2], page.Orders[1].ID)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_OffsetPastEnd() {
	suite.addCustomerOrder(0, kernel.NewUUID())

	query, err := queries.NewListOrdersQuery(suite.actor(user.RoleManager, kernel.NewUUID()), 10, 10, "")
	suite.Require().NoError(err)

	page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(1), page.Total)
	suite.NotNil(page.Orders)
	suite.Empty(page.Orders)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_ScopedByRole() {
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	mine := suite.addCustomerOrder(0, customerID)
	assigned := suite.addOrder(time.Minute, &driverID)
	suite.addOrder(2*time.Minute, nil)

	list := func(actor user.Actor) queries.ListOrdersQueryResponse {
		query, err := queries.NewListOrdersQuery(actor, 0, 0, "")
		suite.Require().NoError(err)
		page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)
		suite.Require().NoError(err)
		return page
	}

	customerPage := list(suite.actor(user.RoleCustomer, customerID))
	suite.Equal(int64(1), customerPage.Total)
	suite.Require().Len(customerPage.Orders, 1)
	suite.Equal(mine.ID(), customerPage.Orders[0].ID)

	driverPage := list(suite.actor(user.RoleDriver, driverID))
	suite.Equal(int64(1), driverPage.Total)
	suite.Require().Len(driverPage.Orders, 1)
	suite.Equal(assigned.ID(), driverPage.Orders[0].ID)

	suite.Equal(int64(3), list(suite.actor(user.RoleWarehouse, kernel.NewUUID())).Total)
	suite.Equal(int64(0), list(suite.actor(user.RoleCustomer, kernel.NewUUID())).Total)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_SearchesOrderIDAndParcelCode() {
	byCode := suite.addCustomerOrder(0, kernel.NewUUID(), "PCL-ALPHA-01")
	byID := suite.addCustomerOrder(time.Minute, kernel.NewUUID(), "PCL-BETA-01")
	suite.addCustomerOrder(2*time.Minute, kernel.NewUUID(), "PCL-GAMMA-01")

	search := func(q string) []kernel.UUID {
		query, err := queries.NewListOrdersQuery(suite.actor(user.RoleManager, kernel.NewUUID()), 0, 0, q)
		suite.Require().NoError(err)
		page, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)
		suite.Require().NoError(err)
		ids := make([]kernel.UUID, 0, len(page.Orders))
		for _, o := range page.Orders {
			ids = append(ids, o.ID)
		}
		return ids
	}

	suite.Equal([]kernel.UUID{byCode.ID()}, search("alpha"))
	suite.Equal([]kernel.UUID{byID.ID()}, search(byID.ID().String()[:13]))
	suite.Empty(search("100%"))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrdersOverview_CountsEveryStatus() {
	suite.addOrder(0, nil)
	suite.addOrder(time.Minute, nil)
	suite.addOrder(2*time.Minute, nil, order.Cancelled)
	driverID := kernel.NewUUID()
	suite.addOrder(3*time.Minute, &driverID)

	resp, err := queries.NewGetOrdersOverviewQueryHandler(suite.db).Handle(context.Background(), queries.NewGetOrdersOverviewQuery())
	suite.Require().NoError(err)

	suite.Equal(int64(4), resp.Total)
	suite.Len(resp.ByStatus, len(order.AllStatuses()))
	suite.Equal(int64(2), resp.ByStatus[order.Pending])
	suite.Equal(int64(1), resp.ByStatus[order.Cancelled])
	suite.Equal(int64(1), resp.ByStatus[order.Assigned])
	suite.Equal(int64(0), resp.ByStatus[order.Delivered])
}

func (suite *QueriesIntegrationTestSuite) TestHandlers_RejectUnconstructedQueries() {
	ctx := context.Background()

	_, err := queries.NewGetOrderTrackingQueryHandler(suite.db).Handle(ctx, queries.GetOrderTrackingQuery{})
	suite.ErrorIs(err, queries.ErrGetOrderTrackingQueryIsNotConstructed)

	_, err = queries.NewGetActiveOrdersQueryHandler(suite.db).Handle(ctx, queries.GetActiveOrdersQuery{})
	suite.ErrorIs(err, queries.ErrGetActiveOrdersQueryIsNotConstructed)

	_, err = queries.NewGetAllDriversQueryHandler(suite.db).Handle(ctx, queries.GetAllDriversQuery{})
	suite.ErrorIs(err, queries.ErrGetAllDriversQueryIsNotConstructed)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, queries.GetOrderQuery{})
	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)

	_, err = queries.NewListOrdersQueryHandler(suite.db).Handle(ctx, queries.ListOrdersQuery{})
	suite.ErrorIs(err, queries.ErrListOrdersQueryIsNotConstructed)

	_, err = queries.NewGetOrdersOverviewQueryHandler(suite.db).Handle(ctx, queries.GetOrdersOverviewQuery{})
	suite.ErrorIs(err, queries.ErrGetOrdersOverviewQueryIsNotConstructed)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
