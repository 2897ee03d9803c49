package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/internal/contacts"
	"github.com/celiadunsmore/counselling-platform/internal/triage"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// recordingSender captures every message handed to Send.
type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func testBooking() *bookings.Booking {
	return &bookings.Booking{
		ID: "booking-1",
		Service: bookings.Service{
			Name:            "Individual Counselling",
			DurationMinutes: 50,
		},
		Client: bookings.Client{
			Name:  "Jordan Reid",
			Email: "jordan@example.com",
		},
		Date:   "2026-09-14",
		Time:   "10:00 AM",
		Status: bookings.StatusConfirmed,
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "celia@example.com", "(03) 9041 5945", nil, logging.Default())

	if err := svc.SendBookingConfirmation(context.Background(), testBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "jordan@example.com" {
		t.Errorf("expected email to the client, got %q", msg.To)
	}
	if !strings.Contains(msg.Body, "Individual Counselling") {
		t.Errorf("expected service name in body: %s", msg.Body)
	}
	if !strings.Contains(msg.Subject, "2026-09-14") {
		t.Errorf("expected date in subject: %s", msg.Subject)
	}
}

func TestSendBookingConfirmation_NoClientEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "celia@example.com", "", nil, logging.Default())

	booking := testBooking()
	booking.Client.Email = ""

	if err := svc.SendBookingConfirmation(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email without a client address, got %d", len(sender.sent))
	}
}

func TestSendBookingConfirmation_NilSender(t *testing.T) {
	svc := NewService(nil, "celia@example.com", "", nil, logging.Default())

	if err := svc.SendBookingConfirmation(context.Background(), testBooking()); err != nil {
		t.Errorf("nil email sender must be a no-op, got: %v", err)
	}
}

func TestSendBookingConfirmation_SendFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewService(sender, "celia@example.com", "", nil, logging.Default())

	if err := svc.SendBookingConfirmation(context.Background(), testBooking()); err == nil {
		t.Error("expected error when send fails")
	}
}

func TestSendContactAlert_UrgentPrefixOnEscalation(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "celia@example.com", "", nil, logging.Default())

	contact := &contacts.Contact{
		ID:      "contact-1",
		Name:    "Sam Lee",
		Email:   "sam@example.com",
		Message: "I need help urgently",
	}
	insights := triage.Result{
		Tier:           triage.TierCrisis,
		UrgencyLevel:   triage.UrgencyCrisis,
		ShouldEscalate: true,
		MatchedKeyword: "urgently",
	}

	if err := svc.SendContactAlert(context.Background(), contact, insights); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if !strings.HasPrefix(msg.Subject, "URGENT:") {
		t.Errorf("expected URGENT subject prefix, got %q", msg.Subject)
	}
	if msg.To != "celia@example.com" {
		t.Errorf("expected alert to the practice owner, got %q", msg.To)
	}
	if !strings.Contains(msg.Body, "10/10") {
		t.Errorf("expected urgency level in body: %s", msg.Body)
	}
}

func TestSendContactAlert_RoutineNoPrefix(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "celia@example.com", "", nil, logging.Default())

	contact := &contacts.Contact{
		ID:      "contact-2",
		Name:    "Alex Chen",
		Email:   "alex@example.com",
		Message: "What are your fees?",
	}
	insights := triage.Result{
		Tier:         triage.TierRoutine,
		UrgencyLevel: triage.UrgencyRoutine,
	}

	if err := svc.SendContactAlert(context.Background(), contact, insights); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(sender.sent[0].Subject, "URGENT:") {
		t.Errorf("routine enquiry must not be marked urgent: %q", sender.sent[0].Subject)
	}
}

func TestSendContactAlert_NoPracticeEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, "", "", nil, logging.Default())

	contact := &contacts.Contact{ID: "contact-3", Name: "Pat", Email: "pat@example.com", Message: "hi"}

	if err := svc.SendContactAlert(context.Background(), contact, triage.Result{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email without a practice address, got %d", len(sender.sent))
	}
}
