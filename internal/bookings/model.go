package bookings

import (
	"strings"
	"time"
)

// StatusConfirmed is the only status assigned at creation; bookings are
// never updated or cancelled through this API.
const StatusConfirmed = "confirmed"

// Service describes the counselling service being booked.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
}

// Client holds the booking client's details.
type Client struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	HasMedicare    bool   `json:"has_medicare"`
	MedicareNumber string `json:"medicare_number,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Booking represents a confirmed appointment request.
type Booking struct {
	ID        string    `json:"id"`
	Service   Service   `json:"service"`
	Client    Client    `json:"client"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // slot label, e.g. "10:00 AM"
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBookingRequest is the request body for creating a booking.
type CreateBookingRequest struct {
	Service Service `json:"service"`
	Client  Client  `json:"client"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
}

// Validate validates the create booking request.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.Service.Name) == "" {
		return ErrMissingService
	}
	if strings.TrimSpace(r.Client.Name) == "" {
		return ErrInvalidClientName
	}
	if strings.TrimSpace(r.Client.Email) == "" && strings.TrimSpace(r.Client.Phone) == "" {
		return ErrMissingContact
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(r.Time) == "" {
		return ErrInvalidTime
	}
	return nil
}
