package contacts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/celiadunsmore/counselling-platform/internal/observability/metrics"
	"github.com/celiadunsmore/counselling-platform/internal/triage"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// AlertSender notifies the practice owner about a new enquiry. Failures
// are logged and never block contact creation.
type AlertSender interface {
	SendContactAlert(ctx context.Context, contact *Contact, insights triage.Result) error
}

// Handler handles HTTP requests for contacts
type Handler struct {
	repo       Repository
	classifier triage.Classifier
	notifier   AlertSender
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// NewHandler creates a new contacts handler
func NewHandler(repo Repository, classifier triage.Classifier, notifier AlertSender, m *metrics.Metrics, logger *logging.Logger) *Handler {
	if classifier == nil {
		panic("contacts: classifier required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:       repo,
		classifier: classifier,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// CreateContactResponse is returned from POST /api/contact.
type CreateContactResponse struct {
	Contact    *Contact      `json:"contact"`
	AIInsights triage.Result `json:"ai_insights"`
}

// Create handles POST /api/contact requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode contact request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Triage runs on the raw message regardless of enquiry type.
	insights := h.classifier.Classify(req.Message)

	contact, err := h.repo.Create(r.Context(), &req, insights.UrgencyLevel)
	if err != nil {
		h.logger.Error("failed to create contact", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.metrics.ObserveContactTriaged(string(insights.Tier), insights.ShouldEscalate)
	if insights.ShouldEscalate {
		h.logger.Warn("contact escalated",
			"id", contact.ID,
			"tier", insights.Tier,
			"urgency", insights.UrgencyLevel,
		)
	} else {
		h.logger.Info("contact created", "id", contact.ID, "enquiry_type", contact.EnquiryType)
	}

	if h.notifier != nil {
		if err := h.notifier.SendContactAlert(r.Context(), contact, insights); err != nil {
			// Alert email failure must never block the enquiry.
			h.logger.Error("contact alert email failed", "error", err, "id", contact.ID)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateContactResponse{
		Contact:    contact,
		AIInsights: insights,
	})
}

// List handles GET /api/admin/contacts requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list contacts", "error", err)
		http.Error(w, "failed to list contacts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}
