package bookings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/celiadunsmore/counselling-platform/internal/observability/metrics"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// ConfirmationSender sends the booking confirmation email. Failures are
// logged and never block booking creation.
type ConfirmationSender interface {
	SendBookingConfirmation(ctx context.Context, booking *Booking) error
}

// AppointmentScheduler places the booking on the practice calendar.
// Like the confirmation email, a scheduling failure never blocks the
// booking itself.
type AppointmentScheduler interface {
	ScheduleAppointment(ctx context.Context, booking *Booking) error
}

// Handler handles HTTP requests for bookings
type Handler struct {
	repo      Repository
	notifier  ConfirmationSender
	scheduler AppointmentScheduler
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewHandler creates a new bookings handler. notifier and scheduler may
// be nil, disabling the corresponding side effect.
func NewHandler(repo Repository, notifier ConfirmationSender, scheduler AppointmentScheduler, m *metrics.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:      repo,
		notifier:  notifier,
		scheduler: scheduler,
		metrics:   m,
		logger:    logger,
	}
}

// Create handles POST /api/bookings requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create booking", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.metrics.ObserveBookingCreated()
	h.logger.Info("booking created",
		"id", booking.ID,
		"service", booking.Service.Name,
		"date", booking.Date,
		"time", booking.Time,
	)

	if h.notifier != nil {
		if err := h.notifier.SendBookingConfirmation(r.Context(), booking); err != nil {
			// Confirmation email failure must never block the booking.
			h.logger.Error("booking confirmation email failed", "error", err, "id", booking.ID)
		}
	}
	if h.scheduler != nil {
		if err := h.scheduler.ScheduleAppointment(r.Context(), booking); err != nil {
			h.logger.Error("calendar appointment creation failed", "error", err, "id", booking.ID)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

// Get handles GET /api/bookings/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	booking, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrBookingNotFound {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load booking", "error", err, "id", id)
		http.Error(w, "failed to load booking", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}

// List handles GET /api/bookings requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list bookings", "error", err)
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}
