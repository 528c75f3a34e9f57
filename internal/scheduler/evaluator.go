package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/internal/notify"

	"gorm.io/gorm"
)

// DefaultGraceMinutes is how late a dose may be before it counts as missed.
const DefaultGraceMinutes = 1.0

// Evaluator classifies overdue doses as missed and triggers guardian
// alerts. Alert dedup is state-based: each log row carries an alerted_at
// stamp, so a slow tick or a paused process delays an alert instead of
// losing it.
type Evaluator struct {
	DB           *gorm.DB
	Dispatcher   *notify.Dispatcher
	GraceMinutes float64 // 0 means DefaultGraceMinutes
}

func (e *Evaluator) grace() float64 {
	if e.GraceMinutes > 0 {
		return e.GraceMinutes
	}
	return DefaultGraceMinutes
}

// Evaluate walks every (medication, scheduled time) pair and settles the
// dose's status. Yesterday is re-walked before today: a process that slept
// across midnight still owes the late-evening doses a verdict. One day of
// lookback; anything older was settled by an earlier run.
func (e *Evaluator) Evaluate(ctx context.Context, now time.Time) error {
	var meds []models.Medication
	if err := e.DB.Find(&meds).Error; err != nil {
		return err
	}

	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		date := day.Format("2006-01-02")
		for _, med := range meds {
			if med.AddedDate > date {
				// Medication did not exist yet on that date.
				continue
			}
			for _, scheduledTime := range med.TimeList() {
				hour, minute, ok := ParseClock(scheduledTime)
				if !ok {
					continue
				}
				scheduled := instantToday(hour, minute, day)
				if now.Sub(scheduled).Minutes() < e.grace() {
					continue
				}
				e.evaluateDose(ctx, med, scheduledTime, date, now)
			}
		}
	}
	return nil
}

// evaluateDose handles one overdue (medication, time, date) tuple:
// upsert the log row to Missed, alert the guardian once, stamp alerted_at.
func (e *Evaluator) evaluateDose(ctx context.Context, med models.Medication, scheduledTime, date string, now time.Time) {
	var entry models.DoseLog
	err := e.DB.
		Where("medication_id = ? AND scheduled_time = ? AND date = ?", med.ID, scheduledTime, date).
		First(&entry).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.DoseLog{
			MedicationID:  med.ID,
			ScheduledTime: scheduledTime,
			Date:          date,
			Status:        models.StatusMissed,
		}
		if err := e.DB.Create(&entry).Error; err != nil {
			log.Printf("scheduler: creating missed log for %s at %s: %v", med.Name, scheduledTime, err)
			return
		}
		log.Printf("scheduler: %s marked missed at %s", med.Name, scheduledTime)
	case err != nil:
		log.Printf("scheduler: reading dose log for %s at %s: %v", med.Name, scheduledTime, err)
		return
	case entry.Status == models.StatusTaken:
		// Taken is sticky; nothing to do.
		return
	}

	if entry.AlertedAt != nil {
		return
	}

	ok, detail := e.Dispatcher.MissedDose(ctx, med, scheduledTime)
	if !ok {
		log.Printf("scheduler: missed-dose alert for %s: %s", med.Name, detail)
	}

	// Stamp regardless of outcome: missed-dose alerts are one-shot, there
	// is no retry once the moment has passed.
	if err := e.DB.Model(&entry).Update("alerted_at", now).Error; err != nil {
		log.Printf("scheduler: stamping alerted_at for %s at %s: %v", med.Name, scheduledTime, err)
	}
}
