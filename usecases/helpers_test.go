package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/repositories"
)

type published struct {
	key   string
	value any
}

// recordingPublisher keeps every event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key: key, value: v})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.key
	}
	return out
}

func f64(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func mustRegister(t *testing.T, uc *UserUseCase, username string, kind entities.UserType) *entities.User {
	t.Helper()
	u, err := uc.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "password123",
		Email:    username + "@test.com",
		UserType: kind,
		Name:     "Name " + username,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

type fixture struct {
	store    *repositories.Store
	events   *recordingPublisher
	users    *UserUseCase
	listings *ListingUseCase
	orders   *OrderUseCase
	messages *MessageUseCase
	stats    *StatsUseCase
}

func newFixture(strict bool) *fixture {
	store := repositories.NewMemoryStore()
	events := &recordingPublisher{}
	return &fixture{
		store:    store,
		events:   events,
		users:    NewUserUseCase(store.Users, PlaintextHasher{}),
		listings: NewListingUseCase(store),
		orders:   NewOrderUseCase(store, events, strict),
		messages: NewMessageUseCase(store, events),
		stats:    NewStatsUseCase(store),
	}
}
