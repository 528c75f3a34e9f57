package models

// Prescription references an uploaded prescription image on disk.
type Prescription struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	MedicationID uint64 `gorm:"not null" json:"medication_id"`
	ImagePath    string `gorm:"size:255;not null" json:"image_path"`
	UploadDate   string `gorm:"size:10;not null" json:"upload_date"`
}
