package repositories

import (
	"context"
	"errors"

	"github.com/Jataveda/Agriconnect/db"
	"github.com/Jataveda/Agriconnect/entities"

	"gorm.io/gorm"
)

type orderSQLRepository struct {
	db db.Database
}

func NewOrderSQLRepository(database db.Database) OrderRepository {
	return &orderSQLRepository{db: database}
}

func (r *orderSQLRepository) Create(ctx context.Context, order *entities.Order) error {
	order.ID = newID()
	order.CreatedAt = now()
	order.UpdatedAt = order.CreatedAt

	err := r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists[entities.Order](tx, "order_number = ?", order.OrderNumber)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateOrderNumber
		}
		return tx.Create(order).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateOrderNumber
	}
	return err
}

func (r *orderSQLRepository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	return findOne[entities.Order](ctx, r.db, "id = ?", id)
}

func (r *orderSQLRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	return findOne[entities.Order](ctx, r.db, "order_number = ?", orderNumber)
}

func (r *orderSQLRepository) GetAll(ctx context.Context) ([]entities.Order, error) {
	return findMany[entities.Order](ctx, r.db, "created_at ASC", "")
}

func (r *orderSQLRepository) GetByUserID(ctx context.Context, userID string) ([]entities.Order, error) {
	return findMany[entities.Order](ctx, r.db, "created_at ASC", "user_id = ?", userID)
}

func (r *orderSQLRepository) GetByItemID(ctx context.Context, itemID string) ([]entities.Order, error) {
	return findMany[entities.Order](ctx, r.db, "created_at ASC", "item_id = ?", itemID)
}

func (r *orderSQLRepository) GetByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return findMany[entities.Order](ctx, r.db, "created_at ASC", "status = ?", status)
}

func (r *orderSQLRepository) Update(ctx context.Context, id string, patch entities.OrderPatch, guard OrderGuard) (*entities.Order, error) {
	return updateRow(ctx, r.db, id, func(order *entities.Order) error {
		if guard != nil {
			if err := guard(order); err != nil {
				return err
			}
		}
		patch.Apply(order)
		order.UpdatedAt = nextStamp(order.UpdatedAt)
		return nil
	})
}

func (r *orderSQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteRow[entities.Order](ctx, r.db, id)
}

// ============= Messages =============

type messageSQLRepository struct {
	db db.Database
}

func NewMessageSQLRepository(database db.Database) MessageRepository {
	return &messageSQLRepository{db: database}
}

func (r *messageSQLRepository) Create(ctx context.Context, message *entities.Message) error {
	message.ID = newID()
	message.Timestamp = now()
	return r.db.GetDB().WithContext(ctx).Create(message).Error
}

func (r *messageSQLRepository) GetByID(ctx context.Context, id string) (*entities.Message, error) {
	return findOne[entities.Message](ctx, r.db, "id = ?", id)
}

func (r *messageSQLRepository) GetByOrderID(ctx context.Context, orderID string) ([]entities.Message, error) {
	return findMany[entities.Message](ctx, r.db, "messages.timestamp ASC", "order_id = ?", orderID)
}
