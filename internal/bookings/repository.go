package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for booking storage
type Repository interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
}

// InMemoryRepository is a Repository implementation backed by an in-memory map.
type InMemoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]*Booking
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		bookings: make(map[string]*Booking),
	}
}

// Create creates a new confirmed booking in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:        uuid.New().String(),
		Service:   req.Service,
		Client:    req.Client,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.bookings[booking.ID] = booking
	r.mu.Unlock()

	return booking, nil
}

// GetByID retrieves a booking by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

// List returns all bookings ordered by creation time, newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
