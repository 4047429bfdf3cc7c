package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/mq"
	"github.com/Jataveda/Agriconnect/repositories"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// orderNumberAttempts bounds the retries after an order number collision.
const orderNumberAttempts = 5

type PlaceOrderInput struct {
	Type      entities.OrderType `json:"type"`
	ItemID    string             `json:"itemId"`
	ItemName  string             `json:"itemName"`
	Total     *float64           `json:"total"`
	Quantity  *int               `json:"quantity"`
	StartDate *entities.Date     `json:"startDate"`
	EndDate   *entities.Date     `json:"endDate"`
	UserID    string             `json:"userId"`
	UserName  string             `json:"userName"`
}

// OrderUpdate is a partial update of an order. Status goes through the same
// transition check as SetStatus.
type OrderUpdate struct {
	Status    *string    `json:"status"`
	Total     *float64   `json:"total"`
	Quantity  *int       `json:"quantity"`
	ItemName  *string    `json:"itemName"`
	StartDate *entities.Date `json:"startDate"`
	EndDate   *entities.Date `json:"endDate"`
}

type OrderUseCase struct {
	OrderRepo         repositories.OrderRepository
	UserRepo          repositories.UserRepository
	VehicleRepo       repositories.VehicleRepository
	ProduceRepo       repositories.ProduceRepository
	PesticideRepo     repositories.PesticideRepository
	Events            mq.EventPublisher
	StrictTransitions bool

	nextNumber func() (string, error)
}

func NewOrderUseCase(store *repositories.Store, events mq.EventPublisher, strictTransitions bool) *OrderUseCase {
	if events == nil {
		events = mq.NoopPublisher{}
	}
	return &OrderUseCase{
		OrderRepo:         store.Orders,
		UserRepo:          store.Users,
		VehicleRepo:       store.Vehicles,
		ProduceRepo:       store.Produce,
		PesticideRepo:     store.Pesticides,
		Events:            events,
		StrictTransitions: strictTransitions,
		nextNumber:        newOrderNumber,
	}
}

// PlaceOrder records a new order in the pending state. It has no inventory
// or payment side effects.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (order *entities.Order, err error) {
	ctx, span := tracer.Start(ctx, "orders.place", trace.WithAttributes(
		attribute.String("order.type", string(in.Type)),
		attribute.String("order.item_id", in.ItemID),
	))
	defer func() { endSpan(span, err) }()

	if !in.Type.Valid() {
		return nil, invalid("type must be vehicle, produce or pesticide")
	}
	if in.ItemID == "" {
		return nil, invalid("itemId is required")
	}
	if in.UserID == "" {
		return nil, invalid("userId is required")
	}
	if in.Total == nil {
		return nil, invalid("total is required")
	}
	if err := nonNegative("total", in.Total); err != nil {
		return nil, err
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	startDate, endDate := in.StartDate.Ptr(), in.EndDate.Ptr()
	if err := checkRentalWindow(startDate, endDate); err != nil {
		return nil, err
	}

	order = &entities.Order{
		UserID:    in.UserID,
		UserName:  in.UserName,
		Type:      in.Type,
		ItemID:    in.ItemID,
		ItemName:  in.ItemName,
		Status:    entities.OrderStatusPending,
		Total:     *in.Total,
		Quantity:  quantity,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if order.UserName == "" {
		if user, err := uc.UserRepo.GetByID(ctx, in.UserID); err == nil {
			order.UserName = user.Name
		}
	}
	if order.ItemName == "" {
		order.ItemName = uc.itemName(ctx, in.Type, in.ItemID)
	}

	for attempt := 1; ; attempt++ {
		order.OrderNumber, err = uc.nextNumber()
		if err != nil {
			return nil, err
		}
		err = uc.OrderRepo.Create(ctx, order)
		if !errors.Is(err, repositories.ErrDuplicateOrderNumber) || attempt == orderNumberAttempts {
			break
		}
		log.Printf("order number %s already taken, retrying", order.OrderNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	span.SetAttributes(attribute.String("order.number", order.OrderNumber))
	uc.publish(ctx, mq.KeyOrderPlaced, order, "")
	return order, nil
}

// SetStatus moves an order to a new status. raw accepts the dashed spelling
// ("in-transit") as well.
func (uc *OrderUseCase) SetStatus(ctx context.Context, id, raw string) (*entities.Order, error) {
	return uc.UpdateOrder(ctx, id, OrderUpdate{Status: &raw})
}

// UpdateOrder applies a partial update. A status change is checked against
// the current status inside the repository's update.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, id string, in OrderUpdate) (order *entities.Order, err error) {
	ctx, span := tracer.Start(ctx, "orders.update", trace.WithAttributes(attribute.String("order.id", id)))
	defer func() { endSpan(span, err) }()

	var patch entities.OrderPatch
	if in.Status != nil {
		status, err := entities.ParseOrderStatus(*in.Status)
		if err != nil {
			return nil, invalid("%v", err)
		}
		patch.Status = &status
		span.SetAttributes(attribute.String("order.status", string(status)))
	}
	if err := nonNegative("total", in.Total); err != nil {
		return nil, err
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		return nil, invalid("quantity must be at least 1")
	}
	patch.Total = in.Total
	patch.Quantity = in.Quantity
	patch.ItemName = in.ItemName
	patch.StartDate = in.StartDate.Ptr()
	patch.EndDate = in.EndDate.Ptr()

	var previous entities.OrderStatus
	guard := func(current *entities.Order) error {
		previous = current.Status
		if patch.Status != nil && uc.StrictTransitions && !entities.CanTransition(current.Status, *patch.Status) {
			return invalid("cannot change order status from %s to %s", current.Status, *patch.Status)
		}
		start, end := current.StartDate, current.EndDate
		if patch.StartDate != nil {
			start = patch.StartDate
		}
		if patch.EndDate != nil {
			end = patch.EndDate
		}
		return checkRentalWindow(start, end)
	}

	order, err = uc.OrderRepo.Update(ctx, id, patch, guard)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, lookupErr(err, "Order")
	}
	if patch.Status != nil && previous != order.Status {
		uc.publish(ctx, mq.KeyOrderStatusChanged, order, previous)
	}
	return order, nil
}

// GetOrder retrieves an order by ID
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	order, err := uc.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Order")
	}
	return order, nil
}

// GetAllOrders retrieves all orders
func (uc *OrderUseCase) GetAllOrders(ctx context.Context) ([]entities.Order, error) {
	return uc.OrderRepo.GetAll(ctx)
}

// GetOrdersByUser retrieves the orders a user placed
func (uc *OrderUseCase) GetOrdersByUser(ctx context.Context, userID string) ([]entities.Order, error) {
	return uc.OrderRepo.GetByUserID(ctx, userID)
}

// GetOrdersByItem retrieves the orders placed against one listing
func (uc *OrderUseCase) GetOrdersByItem(ctx context.Context, itemID string) ([]entities.Order, error) {
	return uc.OrderRepo.GetByItemID(ctx, itemID)
}

// GetOrdersByStatus retrieves the orders currently in status
func (uc *OrderUseCase) GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return uc.OrderRepo.GetByStatus(ctx, status)
}

// DeleteOrder deletes an order
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "orders.delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer func() { endSpan(span, err) }()

	order, err := uc.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, "Order")
	}
	deleted, err := uc.OrderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !deleted {
		return notFound("Order")
	}
	uc.publish(ctx, mq.KeyOrderDeleted, order, "")
	return nil
}

func (uc *OrderUseCase) itemName(ctx context.Context, t entities.OrderType, itemID string) string {
	switch t {
	case entities.OrderTypeVehicle:
		if v, err := uc.VehicleRepo.GetByID(ctx, itemID); err == nil {
			return v.Name
		}
	case entities.OrderTypeProduce:
		if p, err := uc.ProduceRepo.GetByID(ctx, itemID); err == nil {
			return p.Name
		}
	case entities.OrderTypePesticide:
		if p, err := uc.PesticideRepo.GetByID(ctx, itemID); err == nil {
			return p.Name
		}
	}
	return ""
}

// publish never fails the caller; a lost event is logged.
func (uc *OrderUseCase) publish(ctx context.Context, key string, order *entities.Order, previous entities.OrderStatus) {
	ev := mq.OrderEvent{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		ItemID:         order.ItemID,
		Type:           string(order.Type),
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		Total:          order.Total,
		OccurredAt:     time.Now().UTC(),
	}
	if err := uc.Events.PublishJSON(ctx, key, ev); err != nil {
		log.Printf("publish %s for order %s: %v", key, order.ID, err)
	}
}

func checkRentalWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalid("endDate must not be before startDate")
	}
	return nil
}
