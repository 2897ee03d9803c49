package triage

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// Handler handles HTTP requests for the chat assistant
type Handler struct {
	assistant *Assistant
	logger    *logging.Logger
}

// NewHandler creates a new assistant handler
func NewHandler(assistant *Assistant, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		assistant: assistant,
		logger:    logger,
	}
}

// ChatRequest is the request body for POST /api/ai/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat handles POST /api/ai/chat requests
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.assistant.Respond(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Error("assistant failed", "error", err)
		http.Error(w, "assistant unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}
