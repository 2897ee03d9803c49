package contacts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for contact storage
type Repository interface {
	Create(ctx context.Context, req *CreateContactRequest, urgencyLevel int) (*Contact, error)
	GetByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context) ([]*Contact, error)
}

// InMemoryRepository is a Repository implementation backed by an in-memory map.
type InMemoryRepository struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		contacts: make(map[string]*Contact),
	}
}

// Create stores a new contact. Contacts are immutable once created.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateContactRequest, urgencyLevel int) (*Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if urgencyLevel < 1 {
		urgencyLevel = 1
	}

	contact := &Contact{
		ID:                uuid.New().String(),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		EnquiryType:       req.EnquiryType,
		PreferredLocation: req.PreferredLocation,
		Message:           req.Message,
		UrgencyLevel:      urgencyLevel,
		PrivacyConsent:    req.PrivacyConsent,
		CreatedAt:         time.Now().UTC(),
	}

	r.mu.Lock()
	r.contacts[contact.ID] = contact
	r.mu.Unlock()

	return contact, nil
}

// GetByID retrieves a contact by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contact, ok := r.contacts[id]
	if !ok {
		return nil, ErrContactNotFound
	}

	return contact, nil
}

// List returns all contacts, most urgent first then newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UrgencyLevel != out[j].UrgencyLevel {
			return out[i].UrgencyLevel > out[j].UrgencyLevel
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
