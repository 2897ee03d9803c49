package availability

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// Handler handles HTTP requests for availability records
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// UpsertRequest is the request body for manual availability edits.
type UpsertRequest struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// Upsert handles POST /api/admin/availability requests
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode availability request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := h.repo.Upsert(r.Context(), req.Date, req.Slots)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("availability upserted", "date", record.Date, "slots", len(record.AvailableSlots))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// ListRange handles GET /api/admin/availability?start=...&end=... requests.
// Without parameters it defaults to the next 30 days.
func (h *Handler) ListRange(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		now := time.Now().UTC()
		start = now.Format(DateFormat)
		end = now.AddDate(0, 0, 30).Format(DateFormat)
	}

	records, err := h.repo.ListRange(r.Context(), start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if records == nil {
		records = []*Availability{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// ListMonth handles GET /api/admin/availability/dates?year=...&month=... requests
func (h *Handler) ListMonth(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			year = parsed
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= 12 {
			month = parsed
		}
	}

	records, err := h.repo.ListMonth(r.Context(), year, time.Month(month))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dates := make([]string, 0, len(records))
	for _, record := range records {
		if len(record.AvailableSlots) > 0 {
			dates = append(dates, record.Date)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"dates": dates})
}

// Delete handles DELETE /api/admin/availability/{date} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	if err := h.repo.Delete(r.Context(), date); err != nil {
		switch err {
		case ErrNotFound:
			http.Error(w, err.Error(), http.StatusNotFound)
		case ErrInvalidDate:
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to delete availability", "error", err, "date", date)
			http.Error(w, "failed to delete availability", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
