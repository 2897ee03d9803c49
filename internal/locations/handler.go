package locations

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// Handler handles HTTP requests for practice locations
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new locations handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/locations requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list locations", "error", err)
		http.Error(w, "Failed to retrieve locations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locs)
}

// SetPrimary handles POST /api/admin/locations/{id}/primary requests
func (h *Handler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	loc, err := h.repo.SetPrimary(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			http.Error(w, "Location not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to set primary location", "error", err, "id", id)
		http.Error(w, "Failed to update location", http.StatusInternalServerError)
		return
	}

	h.logger.Info("primary location updated", "id", loc.ID, "name", loc.Name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loc)
}
