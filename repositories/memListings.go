package repositories

import (
	"context"

	"github.com/Jataveda/Agriconnect/entities"
)

type vehicleMemRepository struct {
	s *memoryState
}

func (r *vehicleMemRepository) Create(_ context.Context, vehicle *entities.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	vehicle.ID = newID()
	vehicle.CreatedAt = now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	r.s.vehicles.put(vehicle.ID, *vehicle)
	return nil
}

func (r *vehicleMemRepository) GetByID(_ context.Context, id string) (*entities.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	vehicle, ok := r.s.vehicles.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &vehicle, nil
}

func (r *vehicleMemRepository) GetAll(_ context.Context) ([]entities.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.vehicles.filter(nil), nil
}

func (r *vehicleMemRepository) GetByOwnerID(_ context.Context, ownerID string) ([]entities.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.vehicles.filter(func(v *entities.Vehicle) bool { return v.OwnerID == ownerID }), nil
}

func (r *vehicleMemRepository) Update(_ context.Context, id string, patch entities.VehiclePatch) (*entities.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	vehicle, ok := r.s.vehicles.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&vehicle)
	vehicle.UpdatedAt = nextStamp(vehicle.UpdatedAt)
	r.s.vehicles.put(id, vehicle)
	return &vehicle, nil
}

func (r *vehicleMemRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.vehicles.remove(id), nil
}

// ============= Produce =============

type produceMemRepository struct {
	s *memoryState
}

func (r *produceMemRepository) Create(_ context.Context, item *entities.Produce) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = newID()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	r.s.produce.put(item.ID, *item)
	return nil
}

func (r *produceMemRepository) GetByID(_ context.Context, id string) (*entities.Produce, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.produce.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *produceMemRepository) GetAll(_ context.Context) ([]entities.Produce, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.produce.filter(nil), nil
}

func (r *produceMemRepository) GetByFarmerID(_ context.Context, farmerID string) ([]entities.Produce, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.produce.filter(func(p *entities.Produce) bool { return p.FarmerID == farmerID }), nil
}

func (r *produceMemRepository) Update(_ context.Context, id string, patch entities.ProducePatch) (*entities.Produce, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.produce.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&item)
	item.UpdatedAt = nextStamp(item.UpdatedAt)
	r.s.produce.put(id, item)
	return &item, nil
}

func (r *produceMemRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.produce.remove(id), nil
}

// ============= Pesticides =============

type pesticideMemRepository struct {
	s *memoryState
}

func (r *pesticideMemRepository) Create(_ context.Context, item *entities.Pesticide) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = newID()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	r.s.pesticides.put(item.ID, *item)
	return nil
}

func (r *pesticideMemRepository) GetByID(_ context.Context, id string) (*entities.Pesticide, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	item, ok := r.s.pesticides.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *pesticideMemRepository) GetAll(_ context.Context) ([]entities.Pesticide, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.pesticides.filter(nil), nil
}

func (r *pesticideMemRepository) GetBySupplierID(_ context.Context, supplierID string) ([]entities.Pesticide, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.pesticides.filter(func(p *entities.Pesticide) bool { return p.SupplierID == supplierID }), nil
}

func (r *pesticideMemRepository) Update(_ context.Context, id string, patch entities.PesticidePatch) (*entities.Pesticide, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.pesticides.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&item)
	item.UpdatedAt = nextStamp(item.UpdatedAt)
	r.s.pesticides.put(id, item)
	return &item, nil
}

func (r *pesticideMemRepository) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.pesticides.remove(id), nil
}
