package contacts

import (
	"strings"
	"time"
)

// Contact represents an enquiry submitted through the contact form.
type Contact struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	EnquiryType       string    `json:"enquiry_type"`
	PreferredLocation string    `json:"preferred_location,omitempty"`
	Message           string    `json:"message"`
	UrgencyLevel      int       `json:"urgency_level"`
	PrivacyConsent    bool      `json:"privacy_consent"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateContactRequest is the request body for the contact form.
type CreateContactRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	EnquiryType       string `json:"enquiry_type"`
	PreferredLocation string `json:"preferred_location"`
	Message           string `json:"message"`
	PrivacyConsent    bool   `json:"privacy_consent"`
}

// Validate validates the create contact request.
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if !r.PrivacyConsent {
		return ErrConsentRequired
	}
	return nil
}
