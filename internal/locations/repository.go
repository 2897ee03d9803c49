package locations

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for practice location storage
type Repository interface {
	List(ctx context.Context) ([]*Location, error)
	GetByID(ctx context.Context, id string) (*Location, error)
	SetPrimary(ctx context.Context, id string) (*Location, error)
}

// InMemoryRepository is an in-memory implementation of Repository
type InMemoryRepository struct {
	mu        sync.RWMutex
	locations map[string]*Location
	order     []string
}

// NewInMemoryRepository creates a new in-memory locations repository
// seeded with the practice's current locations.
func NewInMemoryRepository() *InMemoryRepository {
	repo := &InMemoryRepository{
		locations: make(map[string]*Location),
	}
	repo.seed()
	return repo
}

func (r *InMemoryRepository) seed() {
	for _, loc := range []*Location{
		{
			Name:          "Brunswick",
			Address:       "503 Sydney Road, Brunswick VIC 3056",
			Lat:           -37.7698,
			Lng:           144.9631,
			Hours:         "Mon-Fri 9:00 AM - 5:00 PM",
			Transport:     "Tram 19, Jewell Station (Upfield line)",
			Accessibility: "Ground floor access, no stairs",
			IsPrimary:     true,
		},
		{
			Name:          "Coburg",
			Address:       "81B Bell Street, Coburg VIC 3058",
			Lat:           -37.7464,
			Lng:           144.9643,
			Hours:         "Sat 9:00 AM - 1:00 PM",
			Transport:     "Bus 508, Coburg Station",
			Accessibility: "Lift access to first floor",
		},
		{
			Name:    "Telehealth",
			Address: "Online via secure video call",
			Hours:   "Mon-Fri 9:00 AM - 5:00 PM",
		},
	} {
		loc.ID = uuid.New().String()
		r.locations[loc.ID] = loc
		r.order = append(r.order, loc.ID)
	}
}

// List returns all locations in their seeded display order
func (r *InMemoryRepository) List(ctx context.Context) ([]*Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Location, 0, len(r.order))
	for _, id := range r.order {
		loc := *r.locations[id]
		out = append(out, &loc)
	}
	return out, nil
}

// GetByID retrieves a location by its ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}
	copied := *loc
	return &copied, nil
}

// SetPrimary marks the given location as primary and clears the flag on
// every other location. Exactly one location is primary after a
// successful call, regardless of prior state.
func (r *InMemoryRepository) SetPrimary(ctx context.Context, id string) (*Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.locations[id]
	if !ok {
		return nil, ErrLocationNotFound
	}

	for _, loc := range r.locations {
		loc.IsPrimary = false
	}
	target.IsPrimary = true

	copied := *target
	return &copied, nil
}
