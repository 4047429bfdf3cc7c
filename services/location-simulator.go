package services

import (
	"context"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Jataveda/Agriconnect/cache"
	"github.com/Jataveda/Agriconnect/entities"
)

// Bounding box the simulated trucks stay inside.
const (
	minLatitude  = 8.0
	maxLatitude  = 13.5
	minLongitude = 76.0
	maxLongitude = 80.0
)

// OrderSource lists orders by status; *usecases.OrderUseCase satisfies it.
type OrderSource interface {
	GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
}

// LocationListener is called for every generated position.
type LocationListener func(orderID string, point entities.Coordinate)

// LocationSimulator produces a position for every in-transit order on each
// tick and keeps the recent ones in a TrackingCache.
type LocationSimulator struct {
	orders   OrderSource
	cache    *cache.TrackingCache
	interval time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	listeners []LocationListener
}

func NewLocationSimulator(orders OrderSource, tc *cache.TrackingCache, interval time.Duration) *LocationSimulator {
	now := uint64(time.Now().UnixNano())
	return &LocationSimulator{
		orders:   orders,
		cache:    tc,
		interval: interval,
		rng:      rand.New(rand.NewPCG(now, now>>1)),
	}
}

// OnLocation registers fn for every new position. Register before Start.
func (ls *LocationSimulator) OnLocation(fn LocationListener) {
	ls.listeners = append(ls.listeners, fn)
}

// Cache exposes the history kept by the simulator.
func (ls *LocationSimulator) Cache() *cache.TrackingCache {
	return ls.cache
}

// Start ticks in the background until ctx is cancelled.
func (ls *LocationSimulator) Start(ctx context.Context) {
	ticker := time.NewTicker(ls.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Printf("Location simulator stopped")
				return
			case <-ticker.C:
				ls.Tick(ctx)
			}
		}
	}()
	log.Printf("Location simulator running every %s", ls.interval)
}

// Tick runs one round and returns how many positions were generated.
func (ls *LocationSimulator) Tick(ctx context.Context) int {
	orders, err := ls.orders.GetOrdersByStatus(ctx, entities.OrderStatusInTransit)
	if err != nil {
		log.Printf("Error loading in-transit orders: %v", err)
		return 0
	}

	active := make(map[string]bool, len(orders))
	for _, o := range orders {
		active[o.ID] = true
	}
	if dropped := ls.cache.Retain(active); dropped > 0 {
		log.Printf("Stopped tracking %d orders no longer in transit", dropped)
	}

	for _, o := range orders {
		point := ls.nextPoint()
		ls.cache.AddPoint(o.ID, point)
		for _, fn := range ls.listeners {
			fn(o.ID, point)
		}
	}
	return len(orders)
}

func (ls *LocationSimulator) nextPoint() entities.Coordinate {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return entities.Coordinate{
		Latitude:  round6(minLatitude + ls.rng.Float64()*(maxLatitude-minLatitude)),
		Longitude: round6(minLongitude + ls.rng.Float64()*(maxLongitude-minLongitude)),
		Timestamp: time.Now().UTC(),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
