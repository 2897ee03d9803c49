package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// recordingProvider captures CreateEvent requests.
type recordingProvider struct {
	*MockProvider
	created []EventRequest
}

func (p *recordingProvider) CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*Event, error) {
	p.created = append(p.created, req)
	return p.MockProvider.CreateEvent(ctx, calendarID, req)
}

func testBookingForSchedule() *bookings.Booking {
	return &bookings.Booking{
		ID: "bk-1",
		Service: bookings.Service{
			Name:            "Individual Counselling",
			DurationMinutes: 50,
		},
		Client: bookings.Client{
			Name:  "Jamie Chen",
			Email: "jamie@example.com",
			Phone: "+61 400 000 000",
		},
		Date:   "2026-09-14",
		Time:   "10:00 AM",
		Status: bookings.StatusConfirmed,
	}
}

func TestScheduleAppointmentCreatesEvent(t *testing.T) {
	provider := &recordingProvider{MockProvider: connectedMock(t)}
	scheduler := NewScheduler(provider, "UTC", logging.Default())

	if err := scheduler.ScheduleAppointment(context.Background(), testBookingForSchedule()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(provider.created) != 1 {
		t.Fatalf("expected one event, got %d", len(provider.created))
	}

	ev := provider.created[0]
	wantStart := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	if !ev.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, ev.Start)
	}
	if got := ev.End.Sub(ev.Start); got != 50*time.Minute {
		t.Errorf("expected 50 minute event, got %v", got)
	}
	if len(ev.Attendees) != 1 || ev.Attendees[0] != "jamie@example.com" {
		t.Errorf("expected client as attendee, got %v", ev.Attendees)
	}
	if ev.Summary != "Individual Counselling: Jamie Chen" {
		t.Errorf("unexpected summary %q", ev.Summary)
	}
}

func TestScheduleAppointmentDefaultsDuration(t *testing.T) {
	provider := &recordingProvider{MockProvider: connectedMock(t)}
	scheduler := NewScheduler(provider, "UTC", logging.Default())

	booking := testBookingForSchedule()
	booking.Service.DurationMinutes = 0
	if err := scheduler.ScheduleAppointment(context.Background(), booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev := provider.created[0]
	if got := ev.End.Sub(ev.Start); got != time.Hour {
		t.Errorf("expected one-hour default, got %v", got)
	}
}

func TestScheduleAppointmentSkipsWhenDisconnected(t *testing.T) {
	provider := &recordingProvider{
		MockProvider: NewMockProvider(NewTokenStore(), "UTC", logging.Default()),
	}
	scheduler := NewScheduler(provider, "UTC", logging.Default())

	if err := scheduler.ScheduleAppointment(context.Background(), testBookingForSchedule()); err != nil {
		t.Fatalf("disconnected calendar must not fail the booking, got %v", err)
	}
	if len(provider.created) != 0 {
		t.Errorf("expected no event, got %d", len(provider.created))
	}
}

func TestScheduleAppointmentRejectsBadSlot(t *testing.T) {
	provider := &recordingProvider{MockProvider: connectedMock(t)}
	scheduler := NewScheduler(provider, "UTC", logging.Default())

	booking := testBookingForSchedule()
	booking.Time = "half past ten"
	if err := scheduler.ScheduleAppointment(context.Background(), booking); err == nil {
		t.Error("expected error for unparseable slot")
	}
	if len(provider.created) != 0 {
		t.Errorf("expected no event, got %d", len(provider.created))
	}
}
