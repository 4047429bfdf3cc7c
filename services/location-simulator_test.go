package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Jataveda/Agriconnect/cache"
	"github.com/Jataveda/Agriconnect/entities"
)

type fakeOrders struct {
	orders []entities.Order
	err    error
}

func (f *fakeOrders) GetOrdersByStatus(_ context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestTickTracksOnlyInTransitOrders(t *testing.T) {
	src := &fakeOrders{orders: []entities.Order{
		{ID: "a", Status: entities.OrderStatusInTransit},
		{ID: "b", Status: entities.OrderStatusPending},
		{ID: "c", Status: entities.OrderStatusInTransit},
	}}
	tc := cache.NewTrackingCache(10)
	sim := NewLocationSimulator(src, tc, time.Hour)

	var heard []string
	sim.OnLocation(func(orderID string, _ entities.Coordinate) { heard = append(heard, orderID) })

	if n := sim.Tick(context.Background()); n != 2 {
		t.Fatalf("expected 2 positions, got %d", n)
	}
	if len(heard) != 2 {
		t.Fatalf("expected listener to be told twice, got %v", heard)
	}
	if len(tc.History("a")) != 1 || len(tc.History("b")) != 0 {
		t.Fatalf("unexpected cache content: %+v", tc.Snapshot())
	}

	src.orders[0].Status = entities.OrderStatusDelivered
	sim.Tick(context.Background())
	if len(tc.History("a")) != 0 {
		t.Fatalf("delivered order should no longer be tracked")
	}
	if len(tc.History("c")) != 2 {
		t.Fatalf("expected two points for c, got %d", len(tc.History("c")))
	}
}

func TestPointsStayInBounds(t *testing.T) {
	sim := NewLocationSimulator(&fakeOrders{}, cache.NewTrackingCache(1), time.Hour)
	for i := 0; i < 1000; i++ {
		p := sim.nextPoint()
		if p.Latitude < minLatitude || p.Latitude > maxLatitude || p.Longitude < minLongitude || p.Longitude > maxLongitude {
			t.Fatalf("point out of bounds: %+v", p)
		}
		if math.Abs(p.Latitude*1e6-math.Round(p.Latitude*1e6)) > 1e-6 {
			t.Fatalf("latitude has more than 6 decimals: %v", p.Latitude)
		}
	}
}

func TestTickSurvivesSourceErrors(t *testing.T) {
	sim := NewLocationSimulator(&fakeOrders{err: errors.New("db down")}, cache.NewTrackingCache(1), time.Hour)
	if n := sim.Tick(context.Background()); n != 0 {
		t.Fatalf("expected no positions, got %d", n)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	src := &fakeOrders{orders: []entities.Order{{ID: "a", Status: entities.OrderStatusInTransit}}}
	tc := cache.NewTrackingCache(100)
	sim := NewLocationSimulator(src, tc, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	sim.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(tc.History("a")) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("simulator never ticked")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
