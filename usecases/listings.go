package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/repositories"
)

type VehicleInput struct {
	Name           string               `json:"name"`
	Type           string               `json:"type"`
	VehicleType    entities.VehicleType `json:"vehicleType"`
	Capacity       string               `json:"capacity"`
	Location       string               `json:"location"`
	PricePerDay    *float64             `json:"pricePerDay"`
	Available      *bool                `json:"available"`
	DynamicPricing bool                 `json:"dynamicPricing"`
	OwnerID        string               `json:"ownerId"`
	OwnerName      string               `json:"ownerName"`
	ImageURL       *string              `json:"imageUrl"`
	Description    *string              `json:"description"`
}

type ProduceInput struct {
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	PricePerKg        *float64 `json:"pricePerKg"`
	QuantityAvailable int      `json:"quantityAvailable"`
	Unit              string   `json:"unit"`
	FarmerID          string   `json:"farmerId"`
	FarmerName        string   `json:"farmerName"`
	Organic           bool     `json:"organic"`
	ImageURL          *string  `json:"imageUrl"`
	Description       *string  `json:"description"`
}

type PesticideInput struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Size         string   `json:"size"`
	Price        *float64 `json:"price"`
	InStock      *bool    `json:"inStock"`
	Category     string   `json:"category"`
	SupplierID   string   `json:"supplierId"`
	SupplierName string   `json:"supplierName"`
	ImageURL     *string  `json:"imageUrl"`
	Description  *string  `json:"description"`
}

// ListingUseCase covers everything farmers put on the marketplace.
type ListingUseCase struct {
	UserRepo      repositories.UserRepository
	VehicleRepo   repositories.VehicleRepository
	ProduceRepo   repositories.ProduceRepository
	PesticideRepo repositories.PesticideRepository
}

func NewListingUseCase(store *repositories.Store) *ListingUseCase {
	return &ListingUseCase{
		UserRepo:      store.Users,
		VehicleRepo:   store.Vehicles,
		ProduceRepo:   store.Produce,
		PesticideRepo: store.Pesticides,
	}
}

// displayName returns fallback when set, otherwise the current name of the
// user. An unknown user yields an empty name; the reference is not enforced.
func (uc *ListingUseCase) displayName(ctx context.Context, userID, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if user, err := uc.UserRepo.GetByID(ctx, userID); err == nil {
		return user.Name
	}
	return ""
}

func nonNegative(field string, v *float64) error {
	if v != nil && *v < 0 {
		return invalid("%s must not be negative", field)
	}
	return nil
}

// ============= Vehicle Use Cases =============

// CreateVehicle creates a new vehicle listing. With dynamic pricing and no
// explicit price, the suggested rate for the location is used.
func (uc *ListingUseCase) CreateVehicle(ctx context.Context, in VehicleInput) (*entities.Vehicle, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.OwnerID == "" {
		return nil, invalid("ownerId is required")
	}
	if in.VehicleType == "" {
		in.VehicleType = entities.VehicleTypeOther
	}
	if !in.VehicleType.Valid() {
		return nil, invalid("unknown vehicleType %q", in.VehicleType)
	}
	if in.PricePerDay == nil && in.DynamicPricing {
		if s, ok := SuggestedPrice(in.Location); ok {
			in.PricePerDay = &s.PricePerDay
		}
	}
	if in.PricePerDay == nil {
		return nil, invalid("pricePerDay is required")
	}
	if err := nonNegative("pricePerDay", in.PricePerDay); err != nil {
		return nil, err
	}

	vehicle := &entities.Vehicle{
		Name:           in.Name,
		Type:           in.Type,
		VehicleType:    in.VehicleType,
		Capacity:       in.Capacity,
		Location:       in.Location,
		PricePerDay:    *in.PricePerDay,
		Available:      in.Available == nil || *in.Available,
		OwnerID:        in.OwnerID,
		OwnerName:      uc.displayName(ctx, in.OwnerID, in.OwnerName),
		DynamicPricing: in.DynamicPricing,
		ImageURL:       in.ImageURL,
		Description:    in.Description,
	}
	if err := uc.VehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (uc *ListingUseCase) GetVehicle(ctx context.Context, id string) (*entities.Vehicle, error) {
	vehicle, err := uc.VehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Vehicle")
	}
	return vehicle, nil
}

// GetAllVehicles retrieves all vehicles
func (uc *ListingUseCase) GetAllVehicles(ctx context.Context) ([]entities.Vehicle, error) {
	return uc.VehicleRepo.GetAll(ctx)
}

// GetVehiclesByOwner retrieves the vehicles one user rents out
func (uc *ListingUseCase) GetVehiclesByOwner(ctx context.Context, ownerID string) ([]entities.Vehicle, error) {
	return uc.VehicleRepo.GetByOwnerID(ctx, ownerID)
}

// UpdateVehicle applies a partial update
func (uc *ListingUseCase) UpdateVehicle(ctx context.Context, id string, patch entities.VehiclePatch) (*entities.Vehicle, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	if patch.VehicleType != nil && !patch.VehicleType.Valid() {
		return nil, invalid("unknown vehicleType %q", *patch.VehicleType)
	}
	if err := nonNegative("pricePerDay", patch.PricePerDay); err != nil {
		return nil, err
	}
	vehicle, err := uc.VehicleRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupErr(err, "Vehicle")
	}
	return vehicle, nil
}

// DeleteVehicle deletes a vehicle
func (uc *ListingUseCase) DeleteVehicle(ctx context.Context, id string) error {
	deleted, err := uc.VehicleRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if !deleted {
		return notFound("Vehicle")
	}
	return nil
}

// ============= Produce Use Cases =============

// CreateProduce creates a new produce listing
func (uc *ListingUseCase) CreateProduce(ctx context.Context, in ProduceInput) (*entities.Produce, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.FarmerID == "" {
		return nil, invalid("farmerId is required")
	}
	if in.PricePerKg == nil {
		return nil, invalid("pricePerKg is required")
	}
	if err := nonNegative("pricePerKg", in.PricePerKg); err != nil {
		return nil, err
	}
	if in.QuantityAvailable < 0 {
		return nil, invalid("quantityAvailable must not be negative")
	}
	if in.Unit == "" {
		in.Unit = "kg"
	}

	item := &entities.Produce{
		Name:              in.Name,
		Category:          in.Category,
		PricePerKg:        *in.PricePerKg,
		QuantityAvailable: in.QuantityAvailable,
		Unit:              in.Unit,
		FarmerID:          in.FarmerID,
		FarmerName:        uc.displayName(ctx, in.FarmerID, in.FarmerName),
		Organic:           in.Organic,
		ImageURL:          in.ImageURL,
		Description:       in.Description,
	}
	if err := uc.ProduceRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create produce: %w", err)
	}
	return item, nil
}

// GetProduce retrieves a produce listing by ID
func (uc *ListingUseCase) GetProduce(ctx context.Context, id string) (*entities.Produce, error) {
	item, err := uc.ProduceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Produce")
	}
	return item, nil
}

// GetAllProduce retrieves all produce listings
func (uc *ListingUseCase) GetAllProduce(ctx context.Context) ([]entities.Produce, error) {
	return uc.ProduceRepo.GetAll(ctx)
}

// GetProduceByFarmer retrieves the produce one farmer sells
func (uc *ListingUseCase) GetProduceByFarmer(ctx context.Context, farmerID string) ([]entities.Produce, error) {
	return uc.ProduceRepo.GetByFarmerID(ctx, farmerID)
}

// UpdateProduce applies a partial update
func (uc *ListingUseCase) UpdateProduce(ctx context.Context, id string, patch entities.ProducePatch) (*entities.Produce, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	if err := nonNegative("pricePerKg", patch.PricePerKg); err != nil {
		return nil, err
	}
	if patch.QuantityAvailable != nil && *patch.QuantityAvailable < 0 {
		return nil, invalid("quantityAvailable must not be negative")
	}
	item, err := uc.ProduceRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupErr(err, "Produce")
	}
	return item, nil
}

// DeleteProduce deletes a produce listing
func (uc *ListingUseCase) DeleteProduce(ctx context.Context, id string) error {
	deleted, err := uc.ProduceRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete produce: %w", err)
	}
	if !deleted {
		return notFound("Produce")
	}
	return nil
}

// ============= Pesticide Use Cases =============

// CreatePesticide creates a new pesticide listing
func (uc *ListingUseCase) CreatePesticide(ctx context.Context, in PesticideInput) (*entities.Pesticide, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if in.SupplierID == "" {
		return nil, invalid("supplierId is required")
	}
	if in.Price == nil {
		return nil, invalid("price is required")
	}
	if err := nonNegative("price", in.Price); err != nil {
		return nil, err
	}

	item := &entities.Pesticide{
		Name:         in.Name,
		Brand:        in.Brand,
		Size:         in.Size,
		Price:        *in.Price,
		InStock:      in.InStock == nil || *in.InStock,
		Category:     in.Category,
		SupplierID:   in.SupplierID,
		SupplierName: uc.displayName(ctx, in.SupplierID, in.SupplierName),
		ImageURL:     in.ImageURL,
		Description:  in.Description,
	}
	if err := uc.PesticideRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create pesticide: %w", err)
	}
	return item, nil
}

// GetPesticide retrieves a pesticide by ID
func (uc *ListingUseCase) GetPesticide(ctx context.Context, id string) (*entities.Pesticide, error) {
	item, err := uc.PesticideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Pesticide")
	}
	return item, nil
}

// GetAllPesticides retrieves all pesticides
func (uc *ListingUseCase) GetAllPesticides(ctx context.Context) ([]entities.Pesticide, error) {
	return uc.PesticideRepo.GetAll(ctx)
}

// GetPesticidesBySupplier retrieves the pesticides one supplier sells
func (uc *ListingUseCase) GetPesticidesBySupplier(ctx context.Context, supplierID string) ([]entities.Pesticide, error) {
	return uc.PesticideRepo.GetBySupplierID(ctx, supplierID)
}

// UpdatePesticide applies a partial update
func (uc *ListingUseCase) UpdatePesticide(ctx context.Context, id string, patch entities.PesticidePatch) (*entities.Pesticide, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	if err := nonNegative("price", patch.Price); err != nil {
		return nil, err
	}
	item, err := uc.PesticideRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupErr(err, "Pesticide")
	}
	return item, nil
}

// DeletePesticide deletes a pesticide
func (uc *ListingUseCase) DeletePesticide(ctx context.Context, id string) error {
	deleted, err := uc.PesticideRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete pesticide: %w", err)
	}
	if !deleted {
		return notFound("Pesticide")
	}
	return nil
}
