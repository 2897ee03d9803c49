package calendar

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// MockProvider implements Provider without real credentials. Slot
// availability is a pure function of the date, so repeated calls and
// tests see identical results. It mutates the same token store as the
// real provider so the connect/disconnect flow is exercised end to end.
type MockProvider struct {
	store   *TokenStore
	account string
	loc     *time.Location
	logger  *logging.Logger
}

// NewMockProvider creates a deterministic mock calendar provider.
func NewMockProvider(store *TokenStore, timezone string, logger *logging.Logger) *MockProvider {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &MockProvider{
		store:   store,
		account: DefaultAccountID,
		loc:     loc,
		logger:  logger,
	}
}

// AuthURL points straight back at the OAuth callback with a canned code.
func (p *MockProvider) AuthURL(state string) string {
	q := url.Values{"code": {"mock-auth-code"}, "state": {state}}
	return "/api/google/oauth/callback?" + q.Encode()
}

// ExchangeCode accepts any non-empty code and stores placeholder tokens.
func (p *MockProvider) ExchangeCode(ctx context.Context, code string) (*Tokens, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", ErrAuthExchange)
	}

	record := &Tokens{
		AccountID:    p.account,
		AccessToken:  "mock-access-token",
		RefreshToken: "mock-refresh-token",
		Expiry:       time.Now().Add(time.Hour),
	}
	if err := p.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("calendar: save tokens: %w", err)
	}

	p.logger.Info("mock calendar connected", "account", p.account)
	return record, nil
}

// ListCalendars returns a single fixed calendar for the practice.
func (p *MockProvider) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	if !p.Connected(ctx) {
		return nil, ErrNotConnected
	}
	return []CalendarInfo{
		{ID: DefaultCalendarID, Summary: "Celia Dunsmore Counselling", Primary: true},
	}, nil
}

// ListEvents synthesizes a busy event for every grid slot the date's
// generator marks unavailable, so event listing and slot computation
// stay consistent.
func (p *MockProvider) ListEvents(ctx context.Context, calendarID string, start, end time.Time) ([]Event, error) {
	if !p.Connected(ctx) {
		return nil, ErrNotConnected
	}

	var events []Event
	for day := start.In(p.loc); day.Before(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateFormat)
		for i, free := range p.slotMask(date) {
			if free {
				continue
			}
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), 9+i, 0, 0, 0, p.loc)
			events = append(events, Event{
				ID:      fmt.Sprintf("mock-%s-%d", date, i),
				Summary: "Busy",
				Start:   slotStart,
				End:     slotStart.Add(time.Hour),
			})
		}
	}
	return events, nil
}

// CreateEvent pretends to insert the event.
func (p *MockProvider) CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*Event, error) {
	if !p.Connected(ctx) {
		return nil, ErrNotConnected
	}
	return &Event{
		ID:          uuid.New().String(),
		Summary:     req.Summary,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Attendees:   req.Attendees,
	}, nil
}

// AvailableSlots returns the date's free subset of the business grid.
// Weekends are fully unavailable; each weekday slot is independently
// available with roughly 70% probability, seeded by the date.
func (p *MockProvider) AvailableSlots(ctx context.Context, calendarID string, date string) ([]string, error) {
	if !p.Connected(ctx) {
		return nil, ErrNotConnected
	}
	if _, err := time.ParseInLocation(dateFormat, date, p.loc); err != nil {
		return nil, fmt.Errorf("calendar: invalid date %q: %w", date, err)
	}

	slots := make([]string, 0, len(SlotGrid))
	for i, free := range p.slotMask(date) {
		if free {
			slots = append(slots, SlotGrid[i])
		}
	}
	return slots, nil
}

// slotMask returns per-slot availability for the date. The generator is
// seeded from the date string, so the mask never changes between calls.
func (p *MockProvider) slotMask(date string) []bool {
	mask := make([]bool, len(SlotGrid))

	day, err := time.ParseInLocation(dateFormat, date, p.loc)
	if err != nil {
		return mask
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return mask
	}

	h := fnv.New64a()
	h.Write([]byte(date))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	for i := range mask {
		mask[i] = rng.Float64() < 0.7
	}
	return mask
}

// Connected reports whether mock credentials are stored.
func (p *MockProvider) Connected(ctx context.Context) bool {
	record, ok := p.store.Get(ctx, p.account)
	return ok && record.RefreshToken != ""
}

// Disconnect clears the stored credentials.
func (p *MockProvider) Disconnect(ctx context.Context) error {
	if err := p.store.Delete(ctx, p.account); err != nil {
		return fmt.Errorf("calendar: delete tokens: %w", err)
	}
	p.logger.Info("mock calendar disconnected", "account", p.account)
	return nil
}
