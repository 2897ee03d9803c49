package calendar

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for the provider contract. Callers distinguish "never
// authenticated" from provider failures instead of collapsing both into
// a nil result.
var (
	// ErrNotConnected is returned by read operations when no stored
	// credentials exist for the account.
	ErrNotConnected = errors.New("calendar: not connected")

	// ErrAuthExchange wraps failures exchanging an authorization code
	// for tokens.
	ErrAuthExchange = errors.New("calendar: auth exchange failed")
)

// DefaultCalendarID is the calendar used when a request does not name one.
const DefaultCalendarID = "primary"

const dateFormat = "2006-01-02"

// SlotGrid is the fixed business-hours grid: 8 hourly slots from
// 9:00 AM through 4:00 PM. Availability for any date is always a
// subset of this grid.
var SlotGrid = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
}

// CalendarInfo identifies a calendar on the connected account.
type CalendarInfo struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Primary bool   `json:"primary"`
}

// Event is a calendar event. Transparent events do not block a slot.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Transparent bool      `json:"transparent,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// EventRequest describes an event to create.
type EventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees,omitempty"`
}

// Provider is the calendar adapter contract, implemented by the real
// Google client and by the deterministic mock.
type Provider interface {
	// AuthURL builds the OAuth consent URL for the given CSRF state.
	AuthURL(state string) string

	// ExchangeCode trades a one-time authorization code for tokens and
	// persists them to the token store. Failures wrap ErrAuthExchange.
	ExchangeCode(ctx context.Context, code string) (*Tokens, error)

	// ListCalendars returns the account's calendars, or ErrNotConnected
	// when no credentials are stored.
	ListCalendars(ctx context.Context) ([]CalendarInfo, error)

	// ListEvents returns events overlapping [start, end), recurring
	// events expanded, ordered by start time.
	ListEvents(ctx context.Context, calendarID string, start, end time.Time) ([]Event, error)

	// CreateEvent inserts an event and notifies attendees.
	CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*Event, error)

	// AvailableSlots returns the free subset of SlotGrid for the date
	// (YYYY-MM-DD), excluding every slot overlapped by a
	// non-transparent event.
	AvailableSlots(ctx context.Context, calendarID string, date string) ([]string, error)

	// Connected reports whether credentials with a refresh token are
	// stored. Token expiry is not consulted; the oauth2 token source
	// refreshes on use.
	Connected(ctx context.Context) bool

	// Disconnect clears the stored credentials.
	Disconnect(ctx context.Context) error
}

// freeSlots computes the complement of the busy slots on date against
// the fixed grid. A slot is busy if any non-transparent event overlaps
// its one-hour window.
func freeSlots(date string, events []Event, loc *time.Location) ([]string, error) {
	day, err := time.ParseInLocation(dateFormat, date, loc)
	if err != nil {
		return nil, err
	}

	free := make([]string, 0, len(SlotGrid))
	for i, slot := range SlotGrid {
		// Wall-clock construction, not midnight plus an offset: a DST
		// transition earlier in the day must not shift the slot windows.
		slotStart := time.Date(day.Year(), day.Month(), day.Day(), 9+i, 0, 0, 0, loc)
		slotEnd := slotStart.Add(time.Hour)

		busy := false
		for _, ev := range events {
			if ev.Transparent {
				continue
			}
			if ev.Start.Before(slotEnd) && ev.End.After(slotStart) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, slot)
		}
	}
	return free, nil
}
