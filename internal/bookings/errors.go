package bookings

import "errors"

var (
	// ErrMissingService is returned when no service is selected
	ErrMissingService = errors.New("service is required")

	// ErrInvalidClientName is returned when the client name is empty
	ErrInvalidClientName = errors.New("client name is required")

	// ErrMissingContact is returned when both email and phone are missing
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrInvalidDate is returned when the date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrInvalidTime is returned when the time slot is empty
	ErrInvalidTime = errors.New("time is required")

	// ErrBookingNotFound is returned when a booking is not found
	ErrBookingNotFound = errors.New("booking not found")
)
