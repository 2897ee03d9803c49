package contacts

import "errors"

var (
	// ErrInvalidName is returned when the name is empty
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidEmail is returned when the email is empty
	ErrInvalidEmail = errors.New("email is required")

	// ErrEmptyMessage is returned when the message is empty
	ErrEmptyMessage = errors.New("message is required")

	// ErrConsentRequired is returned when privacy consent was not given
	ErrConsentRequired = errors.New("privacy consent is required")

	// ErrContactNotFound is returned when a contact is not found
	ErrContactNotFound = errors.New("contact not found")
)
