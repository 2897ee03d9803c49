package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/internal/contacts"
	"github.com/celiadunsmore/counselling-platform/internal/observability/metrics"
	"github.com/celiadunsmore/counselling-platform/internal/triage"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// Service sends booking confirmations to clients and enquiry alerts to
// the practice owner. It satisfies bookings.ConfirmationSender and
// contacts.AlertSender.
type Service struct {
	email         EmailSender
	practiceEmail string
	practicePhone string
	metrics       *metrics.Metrics
	logger        *logging.Logger
}

// NewService creates a notification service. email may be nil, in which
// case every send is a logged no-op.
func NewService(email EmailSender, practiceEmail, practicePhone string, m *metrics.Metrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:         email,
		practiceEmail: practiceEmail,
		practicePhone: practicePhone,
		metrics:       m,
		logger:        logger,
	}
}

// SendBookingConfirmation emails the client their appointment details.
func (s *Service) SendBookingConfirmation(ctx context.Context, booking *bookings.Booking) error {
	if s.email == nil {
		s.logger.Debug("email sender not configured, skipping booking confirmation", "booking_id", booking.ID)
		return nil
	}
	if booking.Client.Email == "" {
		s.logger.Debug("booking has no client email, skipping confirmation", "booking_id", booking.ID)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", booking.Client.Name)
	fmt.Fprintf(&b, "Your appointment with Celia Dunsmore Counselling is confirmed.\n\n")
	fmt.Fprintf(&b, "Service: %s\n", booking.Service.Name)
	if booking.Service.DurationMinutes > 0 {
		fmt.Fprintf(&b, "Duration: %d minutes\n", booking.Service.DurationMinutes)
	}
	fmt.Fprintf(&b, "Date: %s\nTime: %s\n\n", booking.Date, booking.Time)
	if s.practicePhone != "" {
		fmt.Fprintf(&b, "If you need to reschedule, please call %s.\n\n", s.practicePhone)
	}
	fmt.Fprintf(&b, "Warm regards,\nCelia Dunsmore Counselling\n")

	msg := EmailMessage{
		To:      booking.Client.Email,
		ToName:  booking.Client.Name,
		Subject: fmt.Sprintf("Appointment confirmed for %s at %s", booking.Date, booking.Time),
		Body:    b.String(),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail("booking_confirmation", "failure")
		return fmt.Errorf("notify: booking confirmation: %w", err)
	}
	s.metrics.ObserveEmail("booking_confirmation", "success")
	return nil
}

// SendContactAlert emails the practice owner about a new enquiry. The
// subject is prefixed "URGENT" when triage escalates so crisis messages
// stand out in the inbox.
func (s *Service) SendContactAlert(ctx context.Context, contact *contacts.Contact, insights triage.Result) error {
	if s.email == nil {
		s.logger.Debug("email sender not configured, skipping contact alert", "contact_id", contact.ID)
		return nil
	}
	if s.practiceEmail == "" {
		s.logger.Warn("practice email not configured, contact alert dropped", "contact_id", contact.ID)
		return nil
	}

	subject := fmt.Sprintf("New enquiry from %s", contact.Name)
	if insights.ShouldEscalate {
		subject = "URGENT: " + subject
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", contact.Name, contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", contact.Phone)
	}
	if contact.EnquiryType != "" {
		fmt.Fprintf(&b, "Enquiry type: %s\n", contact.EnquiryType)
	}
	if contact.PreferredLocation != "" {
		fmt.Fprintf(&b, "Preferred location: %s\n", contact.PreferredLocation)
	}
	fmt.Fprintf(&b, "Urgency: %d/10 (%s)\n", insights.UrgencyLevel, insights.Tier)
	if insights.MatchedKeyword != "" {
		fmt.Fprintf(&b, "Matched keyword: %q\n", insights.MatchedKeyword)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n", contact.Message)
	if len(insights.SuggestedActions) > 0 {
		fmt.Fprintf(&b, "\nSuggested actions:\n")
		for _, action := range insights.SuggestedActions {
			fmt.Fprintf(&b, "- %s\n", action)
		}
	}

	msg := EmailMessage{
		To:      s.practiceEmail,
		ToName:  "Celia Dunsmore",
		Subject: subject,
		Body:    b.String(),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail("contact_alert", "failure")
		return fmt.Errorf("notify: contact alert: %w", err)
	}
	s.metrics.ObserveEmail("contact_alert", "success")
	return nil
}
