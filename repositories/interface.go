package repositories

import (
	"context"

	"github.com/Jataveda/Agriconnect/entities"
)

// UserRepository stores accounts. Create is an atomic insert-if-absent on
// both username and email.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetAll(ctx context.Context) ([]entities.User, error)
	Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entities.Vehicle) error
	GetByID(ctx context.Context, id string) (*entities.Vehicle, error)
	GetAll(ctx context.Context) ([]entities.Vehicle, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]entities.Vehicle, error)
	Update(ctx context.Context, id string, patch entities.VehiclePatch) (*entities.Vehicle, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ProduceRepository interface {
	Create(ctx context.Context, item *entities.Produce) error
	GetByID(ctx context.Context, id string) (*entities.Produce, error)
	GetAll(ctx context.Context) ([]entities.Produce, error)
	GetByFarmerID(ctx context.Context, farmerID string) ([]entities.Produce, error)
	Update(ctx context.Context, id string, patch entities.ProducePatch) (*entities.Produce, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type PesticideRepository interface {
	Create(ctx context.Context, item *entities.Pesticide) error
	GetByID(ctx context.Context, id string) (*entities.Pesticide, error)
	GetAll(ctx context.Context) ([]entities.Pesticide, error)
	GetBySupplierID(ctx context.Context, supplierID string) ([]entities.Pesticide, error)
	Update(ctx context.Context, id string, patch entities.PesticidePatch) (*entities.Pesticide, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// OrderGuard inspects the current record before an update is applied.
// A non-nil error aborts the update and is returned unchanged.
type OrderGuard func(current *entities.Order) error

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error)
	GetAll(ctx context.Context) ([]entities.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]entities.Order, error)
	GetByItemID(ctx context.Context, itemID string) ([]entities.Order, error)
	GetByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	Update(ctx context.Context, id string, patch entities.OrderPatch, guard OrderGuard) (*entities.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	GetByID(ctx context.Context, id string) (*entities.Message, error)
	GetByOrderID(ctx context.Context, orderID string) ([]entities.Message, error)
}

// Store bundles one repository per entity kind over a shared backend.
type Store struct {
	Users      UserRepository
	Vehicles   VehicleRepository
	Produce    ProduceRepository
	Pesticides PesticideRepository
	Orders     OrderRepository
	Messages   MessageRepository
}
