package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/celiadunsmore/counselling-platform/internal/availability"
	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/internal/calendar"
	"github.com/celiadunsmore/counselling-platform/internal/contacts"
	"github.com/celiadunsmore/counselling-platform/internal/locations"
	"github.com/celiadunsmore/counselling-platform/internal/triage"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()

	availRepo := availability.NewInMemoryRepository()
	tokenStore := calendar.NewTokenStore()
	provider := calendar.NewMockProvider(tokenStore, "UTC", logger)
	syncer := calendar.NewSyncer(provider, availRepo, nil, logger)
	scheduler := calendar.NewScheduler(provider, "UTC", logger)
	classifier := triage.NewKeywordClassifier()
	assistant := triage.NewAssistant(classifier, nil, nil, nil, logger)

	return New(&Config{
		Logger:              logger,
		BookingsHandler:     bookings.NewHandler(bookings.NewInMemoryRepository(), nil, scheduler, nil, logger),
		ContactsHandler:     contacts.NewHandler(contacts.NewInMemoryRepository(), classifier, nil, nil, logger),
		AvailabilityHandler: availability.NewHandler(availRepo, logger),
		LocationsHandler:    locations.NewHandler(locations.NewInMemoryRepository(), logger),
		CalendarHandler:     calendar.NewHandler(provider, syncer, 90, logger),
		AssistantHandler:    triage.NewHandler(assistant, logger),
		AdminToken:          "test-admin-token",
		GoogleMapsAPIKey:    "maps-key",
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestMapsConfigEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/config/maps", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["api_key"] != "maps-key" {
		t.Errorf("expected maps key in response, got %q", resp["api_key"])
	}
}

func TestPublicBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	body, _ := json.Marshal(bookings.CreateBookingRequest{
		Service: bookings.Service{ID: "individual", Name: "Individual Counselling", DurationMinutes: 50},
		Client:  bookings.Client{Name: "Jordan Reid", Email: "jordan@example.com"},
		Date:    "2026-09-14",
		Time:    "10:00 AM",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created bookings.Booking
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/bookings/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/google/calendars"},
		{http.MethodPost, "/api/google/sync"},
		{http.MethodPost, "/api/google/disconnect"},
		{http.MethodPost, "/api/admin/availability"},
		{http.MethodDelete, "/api/admin/availability/2026-09-14"},
		{http.MethodGet, "/api/admin/contacts"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected status %d, got %d", tc.method, tc.path, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAdminRouteWithToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contacts", nil)
	req.Header.Set("Authorization", "Bearer test-admin-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAvailabilityReadIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/availability", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestGoogleStatusIsPublic(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/google/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["connected"] {
		t.Error("expected connected false before auth")
	}
}

func TestChatEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := bytes.NewBufferString(`{"session_id":"s1","message":"What are your fees?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}
