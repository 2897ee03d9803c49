package availability

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository defines the interface for availability storage. Upserts are
// last-write-wins; both the admin UI and the calendar synchronizer write
// through this interface.
type Repository interface {
	Upsert(ctx context.Context, date string, slots []string) (*Availability, error)
	Get(ctx context.Context, date string) (*Availability, error)
	ListRange(ctx context.Context, start, end string) ([]*Availability, error)
	ListMonth(ctx context.Context, year int, month time.Month) ([]*Availability, error)
	Delete(ctx context.Context, date string) error
}

// InMemoryRepository keeps availability in a map keyed by date.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Availability
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Availability),
	}
}

// Upsert replaces the record for a date. Calling it twice with the same
// arguments leaves exactly one record for the date.
func (r *InMemoryRepository) Upsert(ctx context.Context, date string, slots []string) (*Availability, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []string{}
	}

	record := &Availability{
		Date:           date,
		AvailableSlots: append([]string(nil), slots...),
		UpdatedAt:      time.Now().UTC(),
	}

	r.mu.Lock()
	r.records[date] = record
	r.mu.Unlock()

	return record, nil
}

// Get returns the record for a date.
func (r *InMemoryRepository) Get(ctx context.Context, date string) (*Availability, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[date]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// ListRange returns records with start <= date <= end, ordered by date.
func (r *InMemoryRepository) ListRange(ctx context.Context, start, end string) ([]*Availability, error) {
	if err := ValidateDate(start); err != nil {
		return nil, err
	}
	if err := ValidateDate(end); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Availability
	for date, record := range r.records {
		// Lexicographic comparison is correct for YYYY-MM-DD keys.
		if date >= start && date <= end {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// ListMonth returns all records within a calendar month, ordered by date.
func (r *InMemoryRepository) ListMonth(ctx context.Context, year int, month time.Month) ([]*Availability, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return r.ListRange(ctx, first.Format(DateFormat), last.Format(DateFormat))
}

// Delete removes the record for a date.
func (r *InMemoryRepository) Delete(ctx context.Context, date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[date]; !ok {
		return ErrNotFound
	}
	delete(r.records, date)
	return nil
}
