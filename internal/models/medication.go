package models

import (
	"errors"
	"strings"
	"time"
)

// Closed set of medication types shown in the dashboard.
const (
	TypeTablet    = "Tablet"
	TypeCapsule   = "Capsule"
	TypeSyrup     = "Syrup"
	TypeInjection = "Injection"
	TypeDrops     = "Drops"
	TypeInhaler   = "Inhaler"
	TypeCream     = "Cream/Ointment"
	TypeOther     = "Other"
)

var MedTypes = []string{
	TypeTablet, TypeCapsule, TypeSyrup, TypeInjection,
	TypeDrops, TypeInhaler, TypeCream, TypeOther,
}

type Medication struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Dosage         string `gorm:"size:100;not null" json:"dosage"`
	Frequency      int    `gorm:"not null" json:"frequency"`
	// Times holds the schedule as comma-joined "HH:MM" entries,
	// one per dose. len(TimeList()) == Frequency is enforced on input.
	Times          string `gorm:"not null" json:"times"`
	TotalCount     int    `gorm:"not null" json:"total_count"`
	RemainingCount int    `gorm:"not null" json:"remaining_count"`
	AddedDate      string `gorm:"size:10;not null" json:"added_date"` // YYYY-MM-DD
	MedType        string `gorm:"size:30;default:Tablet" json:"med_type"`

	DoseLogs      []DoseLog      `gorm:"foreignKey:MedicationID" json:"dose_logs,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:MedicationID" json:"prescriptions,omitempty"`
}

// TimeList splits the stored schedule into trimmed "HH:MM" strings.
func (m *Medication) TimeList() []string {
	var out []string
	for _, t := range strings.Split(m.Times, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Label is how the medication appears in notification bodies.
func (m *Medication) Label() string {
	return m.Name + " (" + m.Dosage + ")"
}

type CreateMedicationInput struct {
	Name       string   `json:"name" binding:"required"`
	Dosage     string   `json:"dosage" binding:"required"`
	Frequency  int      `json:"frequency" binding:"required,min=1"`
	Times      []string `json:"times" binding:"required"`
	TotalCount int      `json:"total_count" binding:"required,min=1"`
	MedType    string   `json:"med_type"`
}

// Validate enforces the rules the binding tags cannot express.
func (in *CreateMedicationInput) Validate() error {
	if len(in.Times) != in.Frequency {
		return errors.New("number of schedule times must match frequency")
	}
	for _, t := range in.Times {
		if _, err := time.Parse("15:04", strings.TrimSpace(t)); err != nil {
			return errors.New("schedule times must be in HH:MM format")
		}
	}
	if in.MedType == "" {
		in.MedType = TypeTablet
	}
	for _, mt := range MedTypes {
		if in.MedType == mt {
			return nil
		}
	}
	return errors.New("unknown medication type: " + in.MedType)
}

type UpdateStockInput struct {
	RemainingCount *int `json:"remaining_count" binding:"required,min=0"`
}
