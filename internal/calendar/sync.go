package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/celiadunsmore/counselling-platform/internal/availability"
	"github.com/celiadunsmore/counselling-platform/internal/observability/metrics"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// SyncResult reports the outcome of a range sync. Per-day failures are
// counted and surfaced instead of collapsed into a single boolean, so
// the admin UI can show partial failures.
type SyncResult struct {
	DaysSynced int      `json:"days_synced"`
	DaysFailed int      `json:"days_failed"`
	Errors     []string `json:"errors,omitempty"`
}

// Syncer walks a date range and persists per-day availability computed
// by the provider.
type Syncer struct {
	provider Provider
	repo     availability.Repository
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewSyncer creates a calendar availability synchronizer
func NewSyncer(provider Provider, repo availability.Repository, m *metrics.Metrics, logger *logging.Logger) *Syncer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Syncer{
		provider: provider,
		repo:     repo,
		metrics:  m,
		logger:   logger,
	}
}

// Sync computes and upserts availability for every day in [start, end],
// serially. Days are processed one at a time to avoid bursting the
// provider's rate limits; the range is bounded and sync runs rarely.
// A failed day is skipped and its previous stored value retained.
// Context cancellation aborts the remaining range.
func (s *Syncer) Sync(ctx context.Context, calendarID string, start, end time.Time) (*SyncResult, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	began := time.Now()
	result := &SyncResult{}

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			s.metrics.ObserveSyncDuration(time.Since(began).Seconds())
			return result, err
		}

		date := day.Format(dateFormat)

		slots, err := s.provider.AvailableSlots(ctx, calendarID, date)
		if err != nil {
			result.DaysFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", date, err))
			s.metrics.ObserveSyncDay("failure")
			s.logger.Warn("day sync failed, previous availability retained", "date", date, "error", err)
			continue
		}

		if _, err := s.repo.Upsert(ctx, date, slots); err != nil {
			result.DaysFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: store: %v", date, err))
			s.metrics.ObserveSyncDay("failure")
			s.logger.Error("availability upsert failed", "date", date, "error", err)
			continue
		}

		result.DaysSynced++
		s.metrics.ObserveSyncDay("success")
	}

	s.metrics.ObserveSyncDuration(time.Since(began).Seconds())
	s.logger.Info("calendar sync finished",
		"calendar_id", calendarID,
		"days_synced", result.DaysSynced,
		"days_failed", result.DaysFailed,
	)
	return result, nil
}
