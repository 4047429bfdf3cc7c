package repositories

import (
	"context"

	"github.com/Jataveda/Agriconnect/db"
	"github.com/Jataveda/Agriconnect/entities"
)

type vehicleSQLRepository struct {
	db db.Database
}

func NewVehicleSQLRepository(database db.Database) VehicleRepository {
	return &vehicleSQLRepository{db: database}
}

func (r *vehicleSQLRepository) Create(ctx context.Context, vehicle *entities.Vehicle) error {
	vehicle.ID = newID()
	vehicle.CreatedAt = now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	return r.db.GetDB().WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleSQLRepository) GetByID(ctx context.Context, id string) (*entities.Vehicle, error) {
	return findOne[entities.Vehicle](ctx, r.db, "id = ?", id)
}

func (r *vehicleSQLRepository) GetAll(ctx context.Context) ([]entities.Vehicle, error) {
	return findMany[entities.Vehicle](ctx, r.db, "created_at ASC", "")
}

func (r *vehicleSQLRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]entities.Vehicle, error) {
	return findMany[entities.Vehicle](ctx, r.db, "created_at ASC", "owner_id = ?", ownerID)
}

func (r *vehicleSQLRepository) Update(ctx context.Context, id string, patch entities.VehiclePatch) (*entities.Vehicle, error) {
	return updateRow(ctx, r.db, id, func(vehicle *entities.Vehicle) error {
		patch.Apply(vehicle)
		vehicle.UpdatedAt = nextStamp(vehicle.UpdatedAt)
		return nil
	})
}

func (r *vehicleSQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteRow[entities.Vehicle](ctx, r.db, id)
}

// ============= Produce =============

type produceSQLRepository struct {
	db db.Database
}

func NewProduceSQLRepository(database db.Database) ProduceRepository {
	return &produceSQLRepository{db: database}
}

func (r *produceSQLRepository) Create(ctx context.Context, item *entities.Produce) error {
	item.ID = newID()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	return r.db.GetDB().WithContext(ctx).Create(item).Error
}

func (r *produceSQLRepository) GetByID(ctx context.Context, id string) (*entities.Produce, error) {
	return findOne[entities.Produce](ctx, r.db, "id = ?", id)
}

func (r *produceSQLRepository) GetAll(ctx context.Context) ([]entities.Produce, error) {
	return findMany[entities.Produce](ctx, r.db, "created_at ASC", "")
}

func (r *produceSQLRepository) GetByFarmerID(ctx context.Context, farmerID string) ([]entities.Produce, error) {
	return findMany[entities.Produce](ctx, r.db, "created_at ASC", "farmer_id = ?", farmerID)
}

func (r *produceSQLRepository) Update(ctx context.Context, id string, patch entities.ProducePatch) (*entities.Produce, error) {
	return updateRow(ctx, r.db, id, func(item *entities.Produce) error {
		patch.Apply(item)
		item.UpdatedAt = nextStamp(item.UpdatedAt)
		return nil
	})
}

func (r *produceSQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteRow[entities.Produce](ctx, r.db, id)
}

// ============= Pesticides =============

type pesticideSQLRepository struct {
	db db.Database
}

func NewPesticideSQLRepository(database db.Database) PesticideRepository {
	return &pesticideSQLRepository{db: database}
}

func (r *pesticideSQLRepository) Create(ctx context.Context, item *entities.Pesticide) error {
	item.ID = newID()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	return r.db.GetDB().WithContext(ctx).Create(item).Error
}

func (r *pesticideSQLRepository) GetByID(ctx context.Context, id string) (*entities.Pesticide, error) {
	return findOne[entities.Pesticide](ctx, r.db, "id = ?", id)
}

func (r *pesticideSQLRepository) GetAll(ctx context.Context) ([]entities.Pesticide, error) {
	return findMany[entities.Pesticide](ctx, r.db, "created_at ASC", "")
}

func (r *pesticideSQLRepository) GetBySupplierID(ctx context.Context, supplierID string) ([]entities.Pesticide, error) {
	return findMany[entities.Pesticide](ctx, r.db, "created_at ASC", "supplier_id = ?", supplierID)
}

func (r *pesticideSQLRepository) Update(ctx context.Context, id string, patch entities.PesticidePatch) (*entities.Pesticide, error) {
	return updateRow(ctx, r.db, id, func(item *entities.Pesticide) error {
		patch.Apply(item)
		item.UpdatedAt = nextStamp(item.UpdatedAt)
		return nil
	})
}

func (r *pesticideSQLRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteRow[entities.Pesticide](ctx, r.db, id)
}
