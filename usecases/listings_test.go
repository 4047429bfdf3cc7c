package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/Jataveda/Agriconnect/entities"
)

func TestCreateVehicleDefaults(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	farmer := mustRegister(t, f.users, "farmer", entities.UserTypeFarmer)

	v, err := f.listings.CreateVehicle(ctx, VehicleInput{Name: "Tractor A", PricePerDay: f64(100), OwnerID: farmer.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !v.Available || v.DynamicPricing || v.VehicleType != entities.VehicleTypeOther || v.OwnerName != farmer.Name {
		t.Fatalf("defaults not applied: %+v", v)
	}
	got, err := f.listings.GetVehicle(ctx, v.ID)
	if err != nil || got.Name != "Tractor A" || got.PricePerDay != 100 {
		t.Fatalf("get: %v %+v", err, got)
	}
}

func TestVehiclesByOwner(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	v, err := f.listings.CreateVehicle(ctx, VehicleInput{Name: "Tractor A", PricePerDay: f64(100), OwnerID: "U1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mine, _ := f.listings.GetVehiclesByOwner(ctx, "U1")
	if len(mine) != 1 || mine[0].ID != v.ID {
		t.Fatalf("expected the vehicle for U1, got %+v", mine)
	}
	theirs, _ := f.listings.GetVehiclesByOwner(ctx, "U2")
	if len(theirs) != 0 {
		t.Fatalf("expected nothing for U2, got %+v", theirs)
	}
}

func TestDynamicPricingUsesSuggestion(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	v, err := f.listings.CreateVehicle(ctx, VehicleInput{
		Name: "Auto priced", Location: "chicago, il", DynamicPricing: true, OwnerID: "o",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.PricePerDay != 185 {
		t.Fatalf("expected Chicago rate 185, got %v", v.PricePerDay)
	}
	if _, err := f.listings.CreateVehicle(ctx, VehicleInput{
		Name: "Unknown place", Location: "Atlantis", DynamicPricing: true, OwnerID: "o",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected pricePerDay required for unknown location, got %v", err)
	}
}

func TestVehicleValidation(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	cases := []VehicleInput{
		{PricePerDay: f64(1), OwnerID: "o"},
		{Name: "n", PricePerDay: f64(1)},
		{Name: "n", OwnerID: "o"},
		{Name: "n", PricePerDay: f64(-1), OwnerID: "o"},
		{Name: "n", PricePerDay: f64(1), OwnerID: "o", VehicleType: "spaceship"},
	}
	for i, in := range cases {
		if _, err := f.listings.CreateVehicle(ctx, in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUpdateAndDeleteListings(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	p, err := f.listings.CreateProduce(ctx, ProduceInput{Name: "Tomatoes", Category: "Vegetables", PricePerKg: f64(3), QuantityAvailable: 50, FarmerID: "f"})
	if err != nil {
		t.Fatalf("create produce: %v", err)
	}
	if p.Unit != "kg" || p.Organic {
		t.Fatalf("produce defaults not applied: %+v", p)
	}
	organic := true
	updated, err := f.listings.UpdateProduce(ctx, p.ID, entities.ProducePatch{Organic: &organic})
	if err != nil || !updated.Organic || updated.PricePerKg != 3 || updated.QuantityAvailable != 50 {
		t.Fatalf("update produce: %v %+v", err, updated)
	}
	if _, err := f.listings.UpdateProduce(ctx, p.ID, entities.ProducePatch{QuantityAvailable: intPtr(-1)}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := f.listings.DeleteProduce(ctx, p.ID); err != nil {
		t.Fatalf("delete produce: %v", err)
	}
	if err := f.listings.DeleteProduce(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	pe, err := f.listings.CreatePesticide(ctx, PesticideInput{Name: "Neem Oil", Price: f64(12), SupplierID: "s"})
	if err != nil {
		t.Fatalf("create pesticide: %v", err)
	}
	if !pe.InStock {
		t.Fatalf("pesticides default to in stock")
	}
	if _, err := f.listings.UpdatePesticide(ctx, "missing", entities.PesticidePatch{}); err == nil || err.Error() != "Pesticide not found" {
		t.Fatalf("expected 'Pesticide not found', got %v", err)
	}
}

func TestPriceSuggestions(t *testing.T) {
	all := PriceSuggestions()
	if len(all) != 5 {
		t.Fatalf("expected five locations, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Location > all[i].Location {
			t.Fatalf("suggestions not sorted: %v", all)
		}
	}
	s, ok := SuggestedPrice("  Peoria, IL ")
	if !ok || s.PricePerDay != 140 {
		t.Fatalf("expected Peoria at 140, got %+v %v", s, ok)
	}
}
