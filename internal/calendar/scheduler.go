package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

const slotTimeFormat = "2006-01-02 3:04 PM"

// defaultSessionMinutes is used when a booking's service carries no
// duration.
const defaultSessionMinutes = 60

// Scheduler places confirmed bookings on the practice calendar. The
// client is added as an attendee so event creation doubles as a
// calendar invitation. It satisfies bookings.AppointmentScheduler.
type Scheduler struct {
	provider Provider
	loc      *time.Location
	logger   *logging.Logger
}

// NewScheduler creates a scheduler writing to provider's default
// calendar in the given timezone.
func NewScheduler(provider Provider, timezone string, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", "timezone", timezone)
		loc = time.UTC
	}
	return &Scheduler{
		provider: provider,
		loc:      loc,
		logger:   logger,
	}
}

// ScheduleAppointment creates a calendar event for the booking. When no
// calendar is connected the booking proceeds without one and nil is
// returned; bookings must never depend on the calendar being linked.
func (s *Scheduler) ScheduleAppointment(ctx context.Context, booking *bookings.Booking) error {
	if !s.provider.Connected(ctx) {
		s.logger.Debug("calendar not connected, skipping appointment event", "booking_id", booking.ID)
		return nil
	}

	start, err := time.ParseInLocation(slotTimeFormat, booking.Date+" "+booking.Time, s.loc)
	if err != nil {
		return fmt.Errorf("calendar: booking %s has unparseable slot %q %q: %w", booking.ID, booking.Date, booking.Time, err)
	}
	minutes := booking.Service.DurationMinutes
	if minutes <= 0 {
		minutes = defaultSessionMinutes
	}

	req := EventRequest{
		Summary:     fmt.Sprintf("%s: %s", booking.Service.Name, booking.Client.Name),
		Description: s.eventDescription(booking),
		Start:       start,
		End:         start.Add(time.Duration(minutes) * time.Minute),
	}
	if booking.Client.Email != "" {
		req.Attendees = []string{booking.Client.Email}
	}

	ev, err := s.provider.CreateEvent(ctx, DefaultCalendarID, req)
	if err != nil {
		return fmt.Errorf("calendar: create appointment event: %w", err)
	}

	s.logger.Info("appointment event created",
		"booking_id", booking.ID,
		"event_id", ev.ID,
		"start", ev.Start,
	)
	return nil
}

func (s *Scheduler) eventDescription(booking *bookings.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking %s\n", booking.ID)
	if booking.Client.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", booking.Client.Phone)
	}
	if booking.Client.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", booking.Client.Notes)
	}
	return b.String()
}
