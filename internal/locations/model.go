package locations

import "errors"

// ErrLocationNotFound is returned when a location lookup fails
var ErrLocationNotFound = errors.New("location not found")

// Location is a practice location shown on the website and used by the
// booking flow. At most one location is primary at any time.
type Location struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Hours         string  `json:"hours"`
	Transport     string  `json:"transport,omitempty"`
	Accessibility string  `json:"accessibility,omitempty"`
	IsPrimary     bool    `json:"is_primary"`
}
