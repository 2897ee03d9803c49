package availability

import (
	"errors"
	"time"
)

// DateFormat is the canonical key format for availability records.
const DateFormat = "2006-01-02"

var (
	// ErrInvalidDate is returned when a date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrNotFound is returned when no record exists for a date
	ErrNotFound = errors.New("no availability for date")
)

// Availability is the set of bookable slot labels for one calendar date.
// There is at most one record per date.
type Availability struct {
	Date           string    `json:"date"`
	AvailableSlots []string  `json:"available_slots"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidateDate checks the canonical date key format.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
