package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// Handler handles the Google Calendar HTTP surface
type Handler struct {
	provider    Provider
	syncer      *Syncer
	maxSyncDays int
	logger      *logging.Logger
}

// NewHandler creates a new calendar handler
func NewHandler(provider Provider, syncer *Syncer, maxSyncDays int, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxSyncDays <= 0 {
		maxSyncDays = 90
	}
	return &Handler{
		provider:    provider,
		syncer:      syncer,
		maxSyncDays: maxSyncDays,
		logger:      logger,
	}
}

// Auth handles GET /api/auth/google requests. By default it redirects
// to the consent screen; with ?manual=true it returns the URL as JSON
// so an admin can complete the flow in another browser.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	authURL := h.provider.AuthURL(uuid.New().String())

	if r.URL.Query().Get("manual") == "true" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"auth_url": authURL})
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// ManualAuth handles POST /api/google/manual-auth requests with a
// pasted authorization code.
func (h *Handler) ManualAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		http.Error(w, "Authorization code is required", http.StatusBadRequest)
		return
	}

	h.exchange(w, r, req.Code)
}

// Callback handles GET /api/google/oauth/callback requests from the
// consent redirect.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Warn("oauth consent denied", "error", errParam)
		http.Error(w, "Authorization was denied", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	h.exchange(w, r, code)
}

func (h *Handler) exchange(w http.ResponseWriter, r *http.Request, code string) {
	tokens, err := h.provider.ExchangeCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrAuthExchange) {
			h.logger.Warn("auth code exchange rejected", "error", err)
			http.Error(w, "Invalid or expired authorization code", http.StatusBadRequest)
			return
		}
		h.logger.Error("auth code exchange failed", "error", err)
		http.Error(w, "Failed to connect Google Calendar", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"connected": true,
		"expiry":    tokens.Expiry,
	})
}

// Status handles GET /api/google/status requests
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"connected": h.provider.Connected(r.Context()),
	})
}

// ListCalendars handles GET /api/google/calendars requests
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.provider.ListCalendars(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotConnected) {
			http.Error(w, "Google Calendar is not connected", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to list calendars", "error", err)
		http.Error(w, "Failed to list calendars", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calendars)
}

// SyncRequest is the body for POST /api/google/sync. All fields are
// optional; the default window is the next 30 days on the primary
// calendar.
type SyncRequest struct {
	CalendarID string `json:"calendar_id,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

// Sync handles POST /api/google/sync requests
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	start := time.Now()
	if req.StartDate != "" {
		parsed, err := time.Parse(dateFormat, req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		start = parsed
	}

	end := start.AddDate(0, 0, 30)
	if req.EndDate != "" {
		parsed, err := time.Parse(dateFormat, req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end = parsed
	}
	if end.Before(start) {
		http.Error(w, "end_date must not precede start_date", http.StatusBadRequest)
		return
	}
	if max := start.AddDate(0, 0, h.maxSyncDays); end.After(max) {
		end = max
	}

	if !h.provider.Connected(r.Context()) {
		http.Error(w, "Google Calendar is not connected", http.StatusBadRequest)
		return
	}

	result, err := h.syncer.Sync(r.Context(), req.CalendarID, start, end)
	if err != nil {
		h.logger.Error("calendar sync aborted", "error", err)
		http.Error(w, "Calendar sync was interrupted", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Disconnect handles POST /api/google/disconnect requests
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.Disconnect(r.Context()); err != nil {
		h.logger.Error("failed to disconnect calendar", "error", err)
		http.Error(w, "Failed to disconnect", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"connected": false})
}
