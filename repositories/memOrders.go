package repositories

import (
	"context"

	"github.com/Jataveda/Agriconnect/entities"
)

type orderMemRepository struct {
	s *memoryState
}

func (r *orderMemRepository) Create(_ context.Context, order *entities.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.orderNumbers[order.OrderNumber]; taken {
		return ErrDuplicateOrderNumber
	}
	order.ID = newID()
	order.CreatedAt = now()
	order.UpdatedAt = order.CreatedAt
	r.s.orders.put(order.ID, *order)
	r.s.orderNumbers[order.OrderNumber] = order.ID
	return nil
}

func (r *orderMemRepository) GetByID(_ context.Context, id string) (*entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	order, ok := r.s.orders.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (r *orderMemRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	r.s.mu.RLock()
	id, ok := r.s.orderNumbers[orderNumber]
	r.s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *orderMemRepository) GetAll(_ context.Context) ([]entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.orders.filter(nil), nil
}

func (r *orderMemRepository) GetByUserID(_ context.Context, userID string) ([]entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.orders.filter(func(o *entities.Order) bool { return o.UserID == userID }), nil
}

func (r *orderMemRepository) GetByItemID(_ context.Context, itemID string) ([]entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.orders.filter(func(o *entities.Order) bool { return o.ItemID == itemID }), nil
}

func (r *orderMemRepository) GetByStatus(_ context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.orders.filter(func(o *entities.Order) bool { return o.Status == status }), nil
}

func (r *orderMemRepository) Update(_ context.Context, id string, patch entities.OrderPatch, guard OrderGuard) (*entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if guard != nil {
		if err := guard(&order); err != nil {
			return nil, err
		}
	}
	patch.Apply(&order)
	order.UpdatedAt = nextStamp(order.UpdatedAt)
	r.s.orders.put(id, order)
	return &order, nil
}

func (r *orderMemRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders.get(id)
	if !ok {
		return false, nil
	}
	delete(r.s.orderNumbers, order.OrderNumber)
	return r.s.orders.remove(id), nil
}

// ============= Messages =============

type messageMemRepository struct {
	s *memoryState
}

func (r *messageMemRepository) Create(_ context.Context, message *entities.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	message.ID = newID()
	message.Timestamp = now()
	r.s.messages.put(message.ID, *message)
	return nil
}

func (r *messageMemRepository) GetByID(_ context.Context, id string) (*entities.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	message, ok := r.s.messages.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &message, nil
}

func (r *messageMemRepository) GetByOrderID(_ context.Context, orderID string) ([]entities.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.messages.filter(func(m *entities.Message) bool { return m.OrderID == orderID }), nil
}
