package http

import (
	"strings"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/tracking"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CreateOrderRequest struct {
	CustomerID  *openapi_types.UUID `json:"customerId"`
	ParcelCount int                 `json:"parcelCount" validate:"min=1,max=50"`
}

// StatusRequest carries the action of a single-order status change.
type StatusRequest struct {
	Action      string              `json:"action" validate:"required"`
	ReasonCode  *string             `json:"reasonCode"`
	Note        string              `json:"note" validate:"max=1000"`
	Region      string              `json:"region" validate:"max=128"`
	WarehouseID *openapi_types.UUID `json:"warehouseId"`
	ParcelID    *openapi_types.UUID `json:"parcelId"`
}

type BulkStatusRequest struct {
	StatusRequest
	OrderIDs []openapi_types.UUID `json:"orderIds" validate:"required,min=1"`
}

type AssignRequest struct {
	DriverID openapi_types.UUID `json:"driverId" validate:"required"`
}

type BulkAssignRequest struct {
	DriverID openapi_types.UUID   `json:"driverId" validate:"required"`
	OrderIDs []openapi_types.UUID `json:"orderIds" validate:"required,min=1"`
}

type ScanRequest struct {
	ParcelCode  string              `json:"parcelCode" validate:"required"`
	Action      string              `json:"action" validate:"required"`
	WarehouseID *openapi_types.UUID `json:"warehouseId"`
	ReasonCode  *string             `json:"reasonCode"`
	Note        string              `json:"note" validate:"max=1000"`
	Region      string              `json:"region" validate:"max=128"`
}

type TrackingEvent struct {
	ID          openapi_types.UUID  `json:"id"`
	Action      string              `json:"action"`
	Status      *string             `json:"status,omitempty"`
	ReasonCode  *string             `json:"reasonCode,omitempty"`
	Note        string              `json:"note,omitempty"`
	Region      string              `json:"region,omitempty"`
	WarehouseID *openapi_types.UUID `json:"warehouseId,omitempty"`
	ActorID     *openapi_types.UUID `json:"actorId,omitempty"`
	ActorRole   *string             `json:"actorRole,omitempty"`
	ParcelID    *openapi_types.UUID `json:"parcelId,omitempty"`
	OccurredAt  time.Time           `json:"occurredAt"`
}

type Order struct {
	ID                   openapi_types.UUID  `json:"id"`
	CustomerID           openapi_types.UUID  `json:"customerId"`
	Status               string              `json:"status"`
	AssignedDriverID     *openapi_types.UUID `json:"assignedDriverId,omitempty"`
	CurrentWarehouseID   *openapi_types.UUID `json:"currentWarehouseId,omitempty"`
	PickupAttemptCount   int                 `json:"pickupAttemptCount"`
	DeliveryAttemptCount int                 `json:"deliveryAttemptCount"`
	LastExceptionReason  *string             `json:"lastExceptionReason,omitempty"`
	LastExceptionAt      *time.Time          `json:"lastExceptionAt,omitempty"`
	Version              int                 `json:"version"`
	CreatedAt            time.Time           `json:"createdAt"`
	History              []TrackingEvent     `json:"history"`
}

type OrderList struct {
	Count  int     `json:"count"`
	Orders []Order `json:"orders"`
}

type OrderSummary struct {
	ID                   openapi_types.UUID  `json:"id"`
	CustomerID           openapi_types.UUID  `json:"customerId"`
	Status               string              `json:"status"`
	AssignedDriverID     *openapi_types.UUID `json:"assignedDriverId,omitempty"`
	CurrentWarehouseID   *openapi_types.UUID `json:"currentWarehouseId,omitempty"`
	PickupAttemptCount   int                 `json:"pickupAttemptCount"`
	DeliveryAttemptCount int                 `json:"deliveryAttemptCount"`
	LastExceptionReason  *string             `json:"lastExceptionReason,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

type Parcel struct {
	ID   openapi_types.UUID `json:"id"`
	Code string             `json:"code"`
}

// OrderDetails is an order with its parcels and full history.
type OrderDetails struct {
	Order
	UpdatedAt time.Time `json:"updatedAt"`
	Parcels   []Parcel  `json:"parcels"`
}

type OrderPage struct {
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Orders []OrderSummary `json:"orders"`
}

// Overview has one entry per status, zero counts included.
type Overview struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type Tracking struct {
	OrderID openapi_types.UUID `json:"orderId"`
	Status  string             `json:"status"`
	Events  []TrackingEvent    `json:"events"`
}

type Driver struct {
	ID   openapi_types.UUID `json:"id"`
	Name string             `json:"name"`
}

// toTransitionParams converts the optional request fields. Unknown reason
// codes and empty ids are rejected as invalid input.
func (r StatusRequest) toTransitionParams() (services.TransitionParams, error) {
	params := services.TransitionParams{
		Note:   strings.TrimSpace(r.Note),
		Region: strings.TrimSpace(r.Region),
	}

	var err error
	if params.ReasonCode, err = parseReasonCode(r.ReasonCode); err != nil {
		return services.TransitionParams{}, err
	}
	if params.WarehouseID, err = optionalID("warehouseId", r.WarehouseID); err != nil {
		return services.TransitionParams{}, err
	}
	if params.ParcelID, err = optionalID("parcelId", r.ParcelID); err != nil {
		return services.TransitionParams{}, err
	}
	return params, nil
}

func (r ScanRequest) toScanParams() (commands.ScanParcelParams, error) {
	reason, err := parseReasonCode(r.ReasonCode)
	if err != nil {
		return commands.ScanParcelParams{}, err
	}
	warehouseID, err := optionalID("warehouseId", r.WarehouseID)
	if err != nil {
		return commands.ScanParcelParams{}, err
	}
	return commands.ScanParcelParams{
		WarehouseID: warehouseID,
		ReasonCode:  reason,
		Note:        r.Note,
		Region:      r.Region,
	}, nil
}

func parseAction(s string) (tracking.Action, error) {
	action, err := tracking.ParseAction(strings.TrimSpace(s))
	if err != nil {
		return tracking.UnknownAction, errs.NewBatchError(errs.KindInvalidInput, err.Error())
	}
	return action, nil
}

func parseReasonCode(s *string) (*order.ReasonCode, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	reason, err := order.ParseReasonCode(strings.TrimSpace(*s))
	if err != nil {
		return nil, errs.NewBatchError(errs.KindInvalidInput, err.Error())
	}
	return &reason, nil
}

func requiredID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	value, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewBatchError(errs.KindInvalidInput, name+" is required")
	}
	return value, nil
}

func optionalID(name string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	value, err := requiredID(name, *id)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func requiredIDs(name string, ids []openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		value, err := requiredID(name, id)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

func wireID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func wireOptionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	value := wireID(*id)
	return &value
}

func wireOptionalString[T interface{ String() string }](v *T) *string {
	if v == nil {
		return nil
	}
	s := (*v).String()
	return &s
}

func toTrackingEvent(e tracking.Event) TrackingEvent {
	return TrackingEvent{
		ID:          wireID(e.ID()),
		Action:      e.Action().String(),
		Status:      wireOptionalString(e.Status()),
		ReasonCode:  wireOptionalString(e.ReasonCode()),
		Note:        e.Note(),
		Region:      e.Region(),
		WarehouseID: wireOptionalID(e.WarehouseID()),
		ActorID:     wireOptionalID(e.ActorID()),
		ActorRole:   wireOptionalString(e.ActorRole()),
		ParcelID:    wireOptionalID(e.ParcelID()),
		OccurredAt:  e.OccurredAt(),
	}
}

func toOrder(view commands.OrderView) Order {
	o := view.Order
	history := make([]TrackingEvent, 0, len(view.History))
	for _, e := range view.History {
		history = append(history, toTrackingEvent(e))
	}

	return Order{
		ID:                   wireID(o.ID()),
		CustomerID:           wireID(o.CustomerID()),
		Status:               o.Status().String(),
		AssignedDriverID:     wireOptionalID(o.AssignedDriverID()),
		CurrentWarehouseID:   wireOptionalID(o.CurrentWarehouseID()),
		PickupAttemptCount:   o.PickupAttemptCount(),
		DeliveryAttemptCount: o.DeliveryAttemptCount(),
		LastExceptionReason:  wireOptionalString(o.LastExceptionReason()),
		LastExceptionAt:      o.LastExceptionAt(),
		Version:              o.Version(),
		CreatedAt:            o.CreatedAt(),
		History:              history,
	}
}

func toOrderList(views []commands.OrderView) OrderList {
	orders := make([]Order, 0, len(views))
	for _, v := range views {
		orders = append(orders, toOrder(v))
	}
	return OrderList{Count: len(orders), Orders: orders}
}

func toOrderSummary(o queries.OrderReadModel) OrderSummary {
	return OrderSummary{
		ID:                   wireID(o.ID),
		CustomerID:           wireID(o.CustomerID),
		Status:               o.Status.String(),
		AssignedDriverID:     wireOptionalID(o.AssignedDriverID),
		CurrentWarehouseID:   wireOptionalID(o.CurrentWarehouseID),
		PickupAttemptCount:   o.PickupAttemptCount,
		DeliveryAttemptCount: o.DeliveryAttemptCount,
		LastExceptionReason:  wireOptionalString(o.LastExceptionReason),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func toTrackingEvents(models []queries.TrackingEventReadModel) []TrackingEvent {
	events := make([]TrackingEvent, 0, len(models))
	for _, e := range models {
		events = append(events, TrackingEvent{
			ID:          wireID(e.ID),
			Action:      e.Action.String(),
			Status:      wireOptionalString(e.Status),
			ReasonCode:  wireOptionalString(e.ReasonCode),
			Note:        e.Note,
			Region:      e.Region,
			WarehouseID: wireOptionalID(e.WarehouseID),
			ActorID:     wireOptionalID(e.ActorID),
			ActorRole:   wireOptionalString(e.ActorRole),
			ParcelID:    wireOptionalID(e.ParcelID),
			OccurredAt:  e.OccurredAt,
		})
	}
	return events
}

func toTracking(resp queries.GetOrderTrackingQueryResponse) Tracking {
	return Tracking{
		OrderID: wireID(resp.OrderID),
		Status:  resp.Status.String(),
		Events:  toTrackingEvents(resp.Events),
	}
}

func toOrderDetails(resp queries.GetOrderQueryResponse) OrderDetails {
	o := resp.Order
	parcels := make([]Parcel, 0, len(resp.Parcels))
	for _, p := range resp.Parcels {
		parcels = append(parcels, Parcel{ID: wireID(p.ID), Code: p.Code})
	}

	return OrderDetails{
		Order: Order{
			ID:                   wireID(o.ID),
			CustomerID:           wireID(o.CustomerID),
			Status:               o.Status.String(),
			AssignedDriverID:     wireOptionalID(o.AssignedDriverID),
			CurrentWarehouseID:   wireOptionalID(o.CurrentWarehouseID),
			PickupAttemptCount:   o.PickupAttemptCount,
			DeliveryAttemptCount: o.DeliveryAttemptCount,
			LastExceptionReason:  wireOptionalString(o.LastExceptionReason),
			LastExceptionAt:      o.LastExceptionAt,
			Version:              o.Version,
			CreatedAt:            o.CreatedAt,
			History:              toTrackingEvents(resp.History),
		},
		UpdatedAt: o.UpdatedAt,
		Parcels:   parcels,
	}
}

func toOrderPage(page queries.ListOrdersQueryResponse) OrderPage {
	orders := make([]OrderSummary, 0, len(page.Orders))
	for _, o := range page.Orders {
		orders = append(orders, toOrderSummary(o))
	}
	return OrderPage{
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
		Orders: orders,
	}
}

func toOverview(resp queries.GetOrdersOverviewQueryResponse) Overview {
	byStatus := make(map[string]int64, len(resp.ByStatus))
	for status, count := range resp.ByStatus {
		byStatus[status.String()] = count
	}
	return Overview{Total: resp.Total, ByStatus: byStatus}
}
