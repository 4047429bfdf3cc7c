package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Jataveda/Agriconnect/entities"
)

const demoPassword = "password123"

var demoUsers = []RegisterInput{
	{Username: "farmer-test", Password: demoPassword, Email: "farmer@test.com", UserType: entities.UserTypeFarmer, Name: "Test Farmer"},
	{Username: "customer-test", Password: demoPassword, Email: "customer@test.com", UserType: entities.UserTypeCustomer, Name: "Test Customer"},
}

type demoVehicle struct {
	name, kind, capacity, location, description, photo string
	vehicleType                                        string // mapped through seedVehicleType
	price                                              float64
	dynamic                                            bool
}

const unsplash = "https://images.unsplash.com/photo-%s?w=1200&auto=format&fit=crop&q=60"

var demoVehicles = []demoVehicle{
	{"John Deere Tractor 5055E", "Heavy Duty Tractor", "55 HP", "Springfield, IL", "Reliable tractor suitable for plowing and hauling", "1591883621478-7e62cf6fb8e0", "tractor", 145, true},
	{"Kubota Harvester M7", "Combine Harvester", "Large", "Oak Park, IL", "High-capacity harvester ideal for corn and wheat", "1502156464-8c91f7360716", "harvester", 200, false},
	{"Case IH Tractor", "Multi-Purpose Tractor", "75 HP", "Naperville, IL", "Versatile tractor for a variety of farm tasks", "1544989164-3195231800be", "tractor", 170, true},
	{"Sprayer Trailer", "Sprayer", "1000L", "Chicago, IL", "Efficient field sprayer with adjustable nozzles", "1589719584661-6d80b1db6123", "sprayer", 120, false},
	{"New Holland T7 Tractor", "Field Tractor", "140 HP", "Peoria, IL", "Powerful tractor ideal for tillage and hauling", "1512930562315-8096fa5b16c5", "tractor", 185, true},
	{"Bobcat Skid-Steer Loader S650", "Loader", "2,690 lb", "Aurora, IL", "Compact loader for material handling and grading", "1593229514043-17c7f89e3f6a", "loader", 160, false},
	{"Grain Trailer 20ft", "Trailer", "12 ton", "Decatur, IL", "Durable grain trailer suitable for harvest transport", "1592691541121-9f65986d62a8", "trailer", 110, false},
	{"Round Baler RB450", "Baler", "4x5 ft bales", "Bloomington, IL", "Efficient baler for hay and straw", "1622620449341-9850aaf39bd1", "baler", 150, true},
	{"Planter 6-Row", "Planter", "6 rows", "Rockford, IL", "Precision planter suitable for corn and soy", "1582213782179-3f3d94be9a45", "planter", 175, true},
	{"Cultivator 10ft", "Cultivator", "10 ft width", "Champaign, IL", "Heavy-duty cultivator for weed control", "1568643957280-12de9b1b7a5f", "cultivator", 130, false},
	{"Drone Sprayer X-AG", "Drone Sprayer", "30 L", "Evanston, IL", "Aerial spraying drone for targeted application", "1512820790803-83ca734da794", "sprayer", 220, true},
	{"ATV Farm Quad 500", "ATV", "500cc", "Joliet, IL", "Agile ATV for quick field transport", "1599487487170-8b703cfc873a", "atv", 95, false},
	{"Forklift Warehouse 3T", "Forklift", "3 ton", "Elgin, IL", "Reliable forklift for pallet handling", "1581094794329-4cb2b0f5f986", "forklift", 140, false},
}

// seedVehicleType keeps known vehicle types and files everything else under other.
func seedVehicleType(raw string) entities.VehicleType {
	if t := entities.VehicleType(raw); t.Valid() {
		return t
	}
	return entities.VehicleTypeOther
}

// SeedDemoData creates the two test accounts and the demo fleet. It is safe
// to run on every start: existing users and vehicles (matched by name) are
// left alone.
func SeedDemoData(ctx context.Context, users *UserUseCase, listings *ListingUseCase) error {
	for _, in := range demoUsers {
		_, err := users.Register(ctx, in)
		switch {
		case err == nil:
			log.Printf("Created default %s test user: %s / %s", in.UserType, in.Username, demoPassword)
		case errors.Is(err, ErrValidation):
			// already there
		default:
			return fmt.Errorf("seed user %s: %w", in.Username, err)
		}
	}

	farmer, err := users.UserRepo.GetByUsername(ctx, "farmer-test")
	if err != nil {
		return fmt.Errorf("seed vehicles: %w", err)
	}
	existing, err := listings.GetAllVehicles(ctx)
	if err != nil {
		return fmt.Errorf("seed vehicles: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, v := range existing {
		names[v.Name] = true
	}

	created := 0
	for _, d := range demoVehicles {
		if names[d.name] {
			continue
		}
		price, description := d.price, d.description
		imageURL := fmt.Sprintf(unsplash, d.photo)
		_, err := listings.CreateVehicle(ctx, VehicleInput{
			Name:           d.name,
			Type:           d.kind,
			VehicleType:    seedVehicleType(d.vehicleType),
			Capacity:       d.capacity,
			Location:       d.location,
			PricePerDay:    &price,
			DynamicPricing: d.dynamic,
			OwnerID:        farmer.ID,
			OwnerName:      farmer.Name,
			Description:    &description,
			ImageURL:       &imageURL,
		})
		if err != nil {
			return fmt.Errorf("seed vehicle %s: %w", d.name, err)
		}
		created++
	}
	if created > 0 {
		log.Printf("Seeded %d demo vehicles", created)
	}
	return nil
}
