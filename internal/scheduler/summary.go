package scheduler

import (
	"context"
	"log"
	"time"

	"dosebuddy-backend/internal/analytics"
	"dosebuddy-backend/internal/notify"

	"gorm.io/gorm"
)

// SummaryJob sends the end-of-day adherence report to the guardian.
type SummaryJob struct {
	DB         *gorm.DB
	Dispatcher *notify.Dispatcher
}

func (s *SummaryJob) Run(ctx context.Context, now time.Time) error {
	stats, err := analytics.AdherenceStats(s.DB, now, 1)
	if err != nil {
		return err
	}
	if stats.TotalDoses == 0 {
		return nil // nothing scheduled today, nothing to report
	}

	ok, detail := s.Dispatcher.DailySummary(ctx, now, stats)
	if !ok {
		log.Printf("scheduler: daily summary: %s", detail)
	}
	return nil
}
