package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

func TestUpsertHandler(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(UpsertRequest{Date: "2026-09-14", Slots: []string{"9:00 AM", "10:00 AM"}})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/availability", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Upsert(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var record Availability
	if err := json.NewDecoder(w.Body).Decode(&record); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if record.Date != "2026-09-14" || len(record.AvailableSlots) != 2 {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestUpsertHandler_BadDate(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(UpsertRequest{Date: "tomorrow"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/availability", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Upsert(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestListRangeHandler(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	if _, err := repo.Upsert(context.Background(), "2026-09-14", []string{"9:00 AM"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/availability?start=2026-09-01&end=2026-09-30", nil)
	w := httptest.NewRecorder()
	handler.ListRange(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var records []*Availability
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestListMonthHandler_OnlyDatesWithSlots(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	ctx := context.Background()
	if _, err := repo.Upsert(ctx, "2026-09-14", []string{"9:00 AM"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Upsert(ctx, "2026-09-15", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/availability/dates?year=2026&month=9", nil)
	w := httptest.NewRecorder()
	handler.ListMonth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Dates []string `json:"dates"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Dates) != 1 || resp.Dates[0] != "2026-09-14" {
		t.Errorf("expected only dates with open slots, got %v", resp.Dates)
	}
}

func TestDeleteHandler(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	if _, err := repo.Upsert(context.Background(), "2026-09-14", []string{"9:00 AM"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := chi.NewRouter()
	r.Delete("/api/admin/availability/{date}", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/availability/2026-09-14", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/availability/2026-09-14", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d for missing date, got %d", http.StatusNotFound, w.Code)
	}
}
