package repositories

import (
	"context"
	"slices"
	"sync"

	"github.com/Jataveda/Agriconnect/entities"
)

// table keeps rows keyed by id and remembers insertion order so listings are
// stable for the life of the process.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id string, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) remove(id string) bool {
	if _, exists := t.rows[id]; !exists {
		return false
	}
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

// filter returns copies of the rows accepted by keep, in insertion order.
func (t *table[T]) filter(keep func(row *T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(&row) {
			out = append(out, row)
		}
	}
	return out
}

// memoryState is the whole in-memory dataset. A single RWMutex guards every
// table so multi-step checks (uniqueness, status guards) happen atomically.
type memoryState struct {
	mu sync.RWMutex

	users     table[entities.User]
	usernames map[string]string // username -> user id
	emails    map[string]string // email -> user id

	vehicles   table[entities.Vehicle]
	produce    table[entities.Produce]
	pesticides table[entities.Pesticide]

	orders       table[entities.Order]
	orderNumbers map[string]string // order number -> order id

	messages table[entities.Message]
}

// NewMemoryStore builds a fresh, empty in-memory store. Each call is fully
// independent, so tests get isolation by constructing their own.
func NewMemoryStore() *Store {
	s := &memoryState{
		users:        newTable[entities.User](),
		usernames:    make(map[string]string),
		emails:       make(map[string]string),
		vehicles:     newTable[entities.Vehicle](),
		produce:      newTable[entities.Produce](),
		pesticides:   newTable[entities.Pesticide](),
		orders:       newTable[entities.Order](),
		orderNumbers: make(map[string]string),
		messages:     newTable[entities.Message](),
	}
	return &Store{
		Users:      &userMemRepository{s: s},
		Vehicles:   &vehicleMemRepository{s: s},
		Produce:    &produceMemRepository{s: s},
		Pesticides: &pesticideMemRepository{s: s},
		Orders:     &orderMemRepository{s: s},
		Messages:   &messageMemRepository{s: s},
	}
}

type userMemRepository struct {
	s *memoryState
}

func (r *userMemRepository) Create(_ context.Context, user *entities.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usernames[user.Username]; taken {
		return ErrDuplicateUsername
	}
	if _, taken := r.s.emails[user.Email]; taken {
		return ErrDuplicateEmail
	}

	user.ID = newID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	r.s.users.put(user.ID, *user)
	r.s.usernames[user.Username] = user.ID
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r *userMemRepository) GetByID(_ context.Context, id string) (*entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *userMemRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.usernames[username]
	r.s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userMemRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.emails[email]
	r.s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userMemRepository) GetAll(_ context.Context) ([]entities.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users.filter(nil), nil
}

func (r *userMemRepository) Update(_ context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&user)
	user.UpdatedAt = nextStamp(user.UpdatedAt)
	r.s.users.put(id, user)
	return &user, nil
}
