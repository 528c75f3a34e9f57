package models

// LowStockAlert marks that a low-stock notification already went out for a
// medication on a given date, so the daily check never alerts twice.
// Rows are append-only; re-checks key on (medication_id, alert_date).
type LowStockAlert struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	MedicationID uint64 `gorm:"not null;index" json:"medication_id"`
	AlertDate    string `gorm:"size:10;not null;index" json:"alert_date"`
}
