package models

import "time"

// Dose log statuses. Taken is sticky for a given (medication, time, date):
// the background evaluator never downgrades it.
const (
	StatusTaken   = "Taken"
	StatusMissed  = "Missed"
	StatusDelayed = "Delayed"
)

// DoseLog records one scheduled administration instance. At most one row
// exists per (medication, scheduled_time, date); writers update in place.
type DoseLog struct {
	ID            uint64  `gorm:"primaryKey" json:"id"`
	MedicationID  uint64  `gorm:"not null;uniqueIndex:idx_dose_entry" json:"medication_id"`
	ScheduledTime string  `gorm:"size:10;not null;uniqueIndex:idx_dose_entry" json:"scheduled_time"`
	Date          string  `gorm:"size:10;not null;uniqueIndex:idx_dose_entry" json:"date"` // YYYY-MM-DD
	ActualTime    *string `gorm:"size:8" json:"actual_time"`                               // HH:MM:SS, set when Taken
	Status        string  `gorm:"size:10;not null" json:"status"`

	// AlertedAt is stamped when a missed-dose alert for this row went out,
	// so alerting stays correct even if the poll loop stalls past the
	// grace window. Nil means no alert has been dispatched yet.
	AlertedAt *time.Time `json:"alerted_at,omitempty"`
}

type LogDoseInput struct {
	ScheduledTime string `json:"scheduled_time" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=Taken Missed Delayed"`
}
