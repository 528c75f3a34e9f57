package scheduler

import (
	"context"
	"fmt"
	"time"

	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/internal/notify"

	"gorm.io/gorm"
)

// Reminder fires a desktop popup for each dose at its scheduled time.
// Best-effort and in-memory: a restart may repeat a popup, which is fine
// for a local notification.
type Reminder struct {
	DB         *gorm.DB
	Dispatcher *notify.Dispatcher

	day  string
	sent map[string]bool
}

// Run notifies for doses whose scheduled instant fell inside the last
// minute. Must run on a cadence at least that fine.
func (r *Reminder) Run(ctx context.Context, now time.Time) error {
	date := now.Format("2006-01-02")
	if r.day != date {
		r.day = date
		r.sent = make(map[string]bool)
	}

	var meds []models.Medication
	if err := r.DB.Find(&meds).Error; err != nil {
		return err
	}

	for _, med := range meds {
		for _, scheduledTime := range med.TimeList() {
			elapsed, ok := MinutesSince(scheduledTime, now)
			if !ok || elapsed < 0 || elapsed >= 1 {
				continue
			}
			key := fmt.Sprintf("%d|%s", med.ID, scheduledTime)
			if r.sent[key] {
				continue
			}
			r.sent[key] = true
			r.Dispatcher.DoseReminder(med)
		}
	}
	return nil
}
