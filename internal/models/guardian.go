package models

import (
	"errors"
	"strings"
)

// Guardian is the single emergency contact who receives WhatsApp alerts.
// The table holds at most one row; saving replaces any existing record.
type Guardian struct {
	ID            uint64 `gorm:"primaryKey" json:"id"`
	PatientName   string `gorm:"size:100;not null" json:"patient_name"`
	GuardianName  string `gorm:"size:100;not null" json:"guardian_name"`
	GuardianPhone string `gorm:"size:20;not null" json:"guardian_phone"`
	AlertsEnabled bool   `gorm:"default:true" json:"alerts_enabled"`
	Email         string `gorm:"size:100" json:"email"`
	AddedDate     string `gorm:"size:10;not null" json:"added_date"`
}

type SaveGuardianInput struct {
	PatientName   string `json:"patient_name" binding:"required"`
	GuardianName  string `json:"guardian_name" binding:"required"`
	GuardianPhone string `json:"guardian_phone" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
}

// Validate rejects phone numbers without a country code before they can
// ever reach the messaging provider.
func (in *SaveGuardianInput) Validate() error {
	phone := strings.TrimSpace(in.GuardianPhone)
	if !strings.HasPrefix(phone, "+") {
		return errors.New("phone number must include country code (e.g. +919876543210)")
	}
	if len(phone) < 8 {
		return errors.New("phone number is too short")
	}
	in.GuardianPhone = phone
	return nil
}

type ToggleAlertsInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
