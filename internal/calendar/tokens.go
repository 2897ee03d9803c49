package calendar

import (
	"context"
	"sync"
	"time"
)

// DefaultAccountID keys the practice's single connected account. The
// store is account-scoped so a second account can be added without a
// storage change.
const DefaultAccountID = "primary"

// Tokens is a stored OAuth credential record for one account.
type Tokens struct {
	AccountID    string    `json:"account_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	CalendarID   string    `json:"calendar_id,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenStore is an in-memory, account-keyed credential store.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*Tokens
}

// NewTokenStore creates an empty token store
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]*Tokens)}
}

// Save upserts the record for tok.AccountID. Last write wins.
func (s *TokenStore) Save(ctx context.Context, tok *Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccountID == "" {
		tok.AccountID = DefaultAccountID
	}
	copied := *tok
	copied.UpdatedAt = time.Now().UTC()
	s.tokens[copied.AccountID] = &copied
	return nil
}

// Get returns the record for accountID, or false when none is stored.
func (s *TokenStore) Get(ctx context.Context, accountID string) (*Tokens, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tok, ok := s.tokens[accountID]
	if !ok {
		return nil, false
	}
	copied := *tok
	return &copied, true
}

// Delete removes the record for accountID. Deleting a missing record
// is not an error.
func (s *TokenStore) Delete(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, accountID)
	return nil
}
