package cache

import (
	"sync"

	"github.com/Jataveda/Agriconnect/entities"
)

// TrackingCache holds the recent positions of orders that are on the road.
// Nothing here is persisted; history is rebuilt after a restart.
type TrackingCache struct {
	mu     sync.RWMutex
	points map[string][]entities.Coordinate // map[orderID][]points, oldest first
	limit  int
}

type Stats struct {
	Orders int `json:"orders"`
	Points int `json:"points"`
	Limit  int `json:"limit"`
}

func NewTrackingCache(limit int) *TrackingCache {
	if limit <= 0 {
		limit = 1
	}
	return &TrackingCache{
		points: make(map[string][]entities.Coordinate),
		limit:  limit,
	}
}

// AddPoint appends a position and drops the oldest ones beyond the limit.
func (tc *TrackingCache) AddPoint(orderID string, point entities.Coordinate) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	history := append(tc.points[orderID], point)
	if over := len(history) - tc.limit; over > 0 {
		history = append(history[:0:0], history[over:]...)
	}
	tc.points[orderID] = history
}

// History returns a copy of an order's positions, oldest first.
func (tc *TrackingCache) History(orderID string) []entities.Coordinate {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	out := make([]entities.Coordinate, len(tc.points[orderID]))
	copy(out, tc.points[orderID])
	return out
}

func (tc *TrackingCache) Latest(orderID string) (entities.Coordinate, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	history := tc.points[orderID]
	if len(history) == 0 {
		return entities.Coordinate{}, false
	}
	return history[len(history)-1], true
}

// Retain forgets every order not in keep and reports how many were dropped.
func (tc *TrackingCache) Retain(keep map[string]bool) int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	dropped := 0
	for orderID := range tc.points {
		if !keep[orderID] {
			delete(tc.points, orderID)
			dropped++
		}
	}
	return dropped
}

// Snapshot returns a deep copy of every tracked order.
func (tc *TrackingCache) Snapshot() map[string][]entities.Coordinate {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	all := make(map[string][]entities.Coordinate, len(tc.points))
	for orderID, history := range tc.points {
		all[orderID] = make([]entities.Coordinate, len(history))
		copy(all[orderID], history)
	}
	return all
}

func (tc *TrackingCache) Stats() Stats {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	total := 0
	for _, history := range tc.points {
		total += len(history)
	}
	return Stats{Orders: len(tc.points), Points: total, Limit: tc.limit}
}
