package locations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

func TestListHandler(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var locs []*Location
	if err := json.NewDecoder(w.Body).Decode(&locs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(locs) != 3 {
		t.Errorf("expected 3 seeded locations, got %d", len(locs))
	}
}

func TestSetPrimaryHandler(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	locs, _ := repo.List(context.Background())
	var target *Location
	for _, loc := range locs {
		if !loc.IsPrimary {
			target = loc
			break
		}
	}

	r := chi.NewRouter()
	r.Post("/api/admin/locations/{id}/primary", handler.SetPrimary)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/locations/"+target.ID+"/primary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var updated Location
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !updated.IsPrimary {
		t.Error("expected returned location to be primary")
	}
}

func TestSetPrimaryHandler_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	r := chi.NewRouter()
	r.Post("/api/admin/locations/{id}/primary", handler.SetPrimary)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/locations/missing/primary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
