package http

import (
	"context"
	"errors"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.OrderView, error)
}

type UpdateOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (commands.OrderView, error)
}

type UpdateOrdersStatusHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrdersStatusCommand) ([]commands.OrderView, error)
}

type AssignOrdersToDriverHandler interface {
	Handle(ctx context.Context, cmd commands.AssignOrdersToDriverCommand) ([]commands.OrderView, error)
}

type ScanParcelHandler interface {
	Handle(ctx context.Context, cmd commands.ScanParcelCommand) (commands.OrderView, error)
}

type GetOrderTrackingHandler interface {
	Handle(ctx context.Context, query queries.GetOrderTrackingQuery) (queries.GetOrderTrackingQueryResponse, error)
}

type GetActiveOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetActiveOrdersQuery) ([]queries.GetActiveOrdersQueryResponse, error)
}

type GetAllDriversHandler interface {
	Handle(ctx context.Context, query queries.GetAllDriversQuery) ([]queries.GetAllDriversQueryResponse, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error)
}

type GetOrdersOverviewHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersOverviewQuery) (queries.GetOrdersOverviewQueryResponse, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder          CreateOrderHandler
	UpdateOrderStatus    UpdateOrderStatusHandler
	UpdateOrdersStatus   UpdateOrdersStatusHandler
	AssignOrdersToDriver AssignOrdersToDriverHandler
	ScanParcel           ScanParcelHandler
	GetOrderTracking     GetOrderTrackingHandler
	GetActiveOrders      GetActiveOrdersHandler
	GetAllDrivers        GetAllDriversHandler
	GetOrder             GetOrderHandler
	ListOrders           ListOrdersHandler
	GetOrdersOverview    GetOrdersOverviewHandler
}

// Server translates HTTP requests into commands and queries and their
// results into the JSON documents of the API.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// CreateOrder handles POST /api/v1/orders. Customers register orders for
// themselves; managers name the customer.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, _ := actorFrom(c)

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	customerID := actor.ID()
	if actor.Role() != user.RoleCustomer {
		if req.CustomerID == nil {
			return writeError(c, errs.NewBatchError(errs.KindInvalidInput, "customer id is required"))
		}
		id, err := requiredID("customerId", *req.CustomerID)
		if err != nil {
			return writeError(c, err)
		}
		customerID = id
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, req.ParcelCount, actor)
	if err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	view, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	observe(tracking.OrderCreated, err, 1)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrder(view))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	actor, _ := actorFrom(c)

	orderID, err := bindOrderID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req StatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	action, err := parseAction(req.Action)
	if err != nil {
		return writeError(c, err)
	}
	params, err := req.toTransitionParams()
	if err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewUpdateOrderStatusCommand(actor, orderID, action, params)
	view, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	observe(action, err, 1)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(view))
}

// UpdateOrdersStatus handles PATCH /api/v1/orders/status-bulk. The batch is
// all-or-nothing.
func (s *Server) UpdateOrdersStatus(c echo.Context) error {
	actor, _ := actorFrom(c)

	var req BulkStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	orderIDs, err := requiredIDs("orderIds", req.OrderIDs)
	if err != nil {
		return writeError(c, err)
	}
	action, err := parseAction(req.Action)
	if err != nil {
		return writeError(c, err)
	}
	params, err := req.toTransitionParams()
	if err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewUpdateOrdersStatusCommand(actor, orderIDs, action, params)
	views, err := s.handlers.UpdateOrdersStatus.Handle(c.Request().Context(), cmd)
	observe(action, err, len(views))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderList(views))
}

// AssignOrderToDriver handles PATCH /api/v1/orders/:orderId/assign-driver.
func (s *Server) AssignOrderToDriver(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req AssignRequest
	if err = bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	views, err := s.assign(c, []kernel.UUID{orderID}, req.DriverID)
	if err != nil {
		return writeError(c, err)
	}
	if len(views) != 1 {
		return writeError(c, errs.NewObjectNotFoundError("order", orderID.String()))
	}

	return c.JSON(http.StatusOK, toOrder(views[0]))
}

// AssignOrdersToDriver handles PATCH /api/v1/orders/assign-driver-bulk.
func (s *Server) AssignOrdersToDriver(c echo.Context) error {
	var req BulkAssignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	orderIDs, err := requiredIDs("orderIds", req.OrderIDs)
	if err != nil {
		return writeError(c, err)
	}

	views, err := s.assign(c, orderIDs, req.DriverID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderList(views))
}

func (s *Server) assign(c echo.Context, orderIDs []kernel.UUID, driver openapi_types.UUID) ([]commands.OrderView, error) {
	driverID, err := requiredID("driverId", driver)
	if err != nil {
		return nil, err
	}

	var actor *user.Actor
	if a, ok := actorFrom(c); ok {
		actor = &a
	}

	cmd := commands.NewAssignOrdersToDriverCommand(orderIDs, driverID, actor)
	views, err := s.handlers.AssignOrdersToDriver.Handle(c.Request().Context(), cmd)
	observe(tracking.DriverAssigned, err, len(views))
	return views, err
}

// ScanParcel handles POST /api/v1/warehouse/scan.
func (s *Server) ScanParcel(c echo.Context) error {
	actor, _ := actorFrom(c)

	var req ScanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	action, err := parseAction(req.Action)
	if err != nil {
		return writeError(c, err)
	}
	params, err := req.toScanParams()
	if err != nil {
		return writeError(c, err)
	}

	cmd := commands.NewScanParcelCommand(actor, req.ParcelCode, action, params)
	view, err := s.handlers.ScanParcel.Handle(c.Request().Context(), cmd)
	observe(action, err, 1)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(view))
}

// GetOrderTracking handles GET /api/v1/tracking/:orderId.
func (s *Server) GetOrderTracking(c echo.Context) error {
	orderID, err := bindOrderID(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(orderID)
	if err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	resp, err := s.handlers.GetOrderTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toTracking(resp))
}

// GetActiveOrders handles GET /api/v1/orders/active. Drivers only see the
// orders assigned to them, whatever filter they ask for.
func (s *Server) GetActiveOrders(c echo.Context) error {
	actor, _ := actorFrom(c)

	var driverFilter *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, "driverId", c.QueryParams(), &driverFilter); err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	driverID, err := optionalID("driverId", driverFilter)
	if err != nil {
		return writeError(c, err)
	}
	if actor.Role() == user.RoleDriver {
		own := actor.ID()
		driverID = &own
	}

	query, err := queries.NewGetActiveOrdersQuery(driverID)
	if err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	orders, err := s.handlers.GetActiveOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = toOrderSummary(o)
	}
	return c.JSON(http.StatusOK, response)
}

// GetDrivers handles GET /api/v1/drivers.
func (s *Server) GetDrivers(c echo.Context) error {
	drivers, err := s.handlers.GetAllDrivers.Handle(c.Request().Context(), queries.NewGetAllDriversQuery())
	if err != nil {
		return writeError(c, err)
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = Driver{ID: wireID(d.ID), Name: d.Name}
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	actor, _ := actorFrom(c)

	orderID, err := bindOrderID(c)
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	resp, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderDetails(resp))
}

// ListOrders handles GET /api/v1/orders. Limits above the cap are clamped.
func (s *Server) ListOrders(c echo.Context) error {
	actor, _ := actorFrom(c)

	var limit, offset *int
	var search *string
	params := c.QueryParams()
	if err := errors.Join(
		runtime.BindQueryParameter("form", true, false, "limit", params, &limit),
		runtime.BindQueryParameter("form", true, false, "offset", params, &offset),
		runtime.BindQueryParameter("form", true, false, "q", params, &search),
	); err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	query, err := queries.NewListOrdersQuery(actor, valueOrZero(limit), valueOrZero(offset), valueOrZero(search))
	if err != nil {
		return writeError(c, errs.NewBatchError(errs.KindInvalidInput, err.Error()))
	}

	page, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrderPage(page))
}

// GetOrdersOverview handles GET /api/v1/manager/overview.
func (s *Server) GetOrdersOverview(c echo.Context) error {
	resp, err := s.handlers.GetOrdersOverview.Handle(c.Request().Context(), queries.NewGetOrdersOverviewQuery())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOverview(resp))
}

func valueOrZero[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func bindOrderID(c echo.Context) (kernel.UUID, error) {
	var orderID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewBatchError(errs.KindInvalidInput, "invalid orderId: "+err.Error())
	}
	return requiredID("orderId", orderID)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewBatchError(errs.KindInvalidInput, "invalid request body")
	}
	return c.Validate(req)
}

func observe(action tracking.Action, err error, changed int) {
	outcome := "ok"
	if err != nil {
		outcome = errs.KindOf(err).String()
		changed = 0
	}
	metrics.ObserveWorkflow(action.String(), outcome, changed)
}
