package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/internal/scheduler"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddMedication registers a new medication with its schedule.
func AddMedication(c *gin.Context) {
	var input models.CreateMedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid medication input", err.Error())
		return
	}
	if err := input.Validate(); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	med := models.Medication{
		Name:           input.Name,
		Dosage:         input.Dosage,
		Frequency:      input.Frequency,
		Times:          strings.Join(input.Times, ","),
		TotalCount:     input.TotalCount,
		RemainingCount: input.TotalCount,
		AddedDate:      time.Now().Format("2006-01-02"),
		MedType:        input.MedType,
	}

	if err := config.DB.Create(&med).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to save medication", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Medication added", med)
}

// GetMedications lists everything. Read errors degrade to an empty list so
// the dashboard keeps rendering.
func GetMedications(c *gin.Context) {
	meds := []models.Medication{}
	config.DB.Order("name").Find(&meds)
	utils.APIResponse(c, http.StatusOK, true, "Medications", meds)
}

func GetMedication(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var med models.Medication
	if err := config.DB.First(&med, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medication not found", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Medication", med)
}

// DeleteMedication removes a medication and everything hanging off it.
func DeleteMedication(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var med models.Medication
	if err := config.DB.First(&med, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medication not found", nil)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medication_id = ?", id).Delete(&models.DoseLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("medication_id = ?", id).Delete(&models.Prescription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("medication_id = ?", id).Delete(&models.LowStockAlert{}).Error; err != nil {
			return err
		}
		return tx.Delete(&med).Error
	})
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete medication", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Medication deleted", nil)
}

// UpdateStock sets the remaining unit count directly (refills, corrections).
func UpdateStock(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var input models.UpdateStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid stock input", err.Error())
		return
	}

	var med models.Medication
	if err := config.DB.First(&med, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medication not found", nil)
		return
	}

	remaining := *input.RemainingCount
	if remaining > med.TotalCount {
		utils.APIResponse(c, http.StatusBadRequest, false, "Remaining count cannot exceed total count", nil)
		return
	}

	if err := config.DB.Model(&med).Update("remaining_count", remaining).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update stock", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Stock updated", med)
}

// LogDose records a dose as Taken/Missed/Delayed for today, updating in
// place if the (medication, time, date) row already exists. Taking a dose
// decrements the remaining count, never below zero.
func LogDose(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var input models.LogDoseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid dose log input", err.Error())
		return
	}

	var med models.Medication
	if err := config.DB.First(&med, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medication not found", nil)
		return
	}

	now := time.Now()
	date := now.Format("2006-01-02")

	var actualTime *string
	if input.Status == models.StatusTaken {
		t := now.Format("15:04:05")
		actualTime = &t
	}

	var entry models.DoseLog
	err := config.DB.
		Where("medication_id = ? AND scheduled_time = ? AND date = ?", id, input.ScheduledTime, date).
		First(&entry).Error

	wasTaken := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.DoseLog{
			MedicationID:  id,
			ScheduledTime: input.ScheduledTime,
			Date:          date,
			Status:        input.Status,
			ActualTime:    actualTime,
		}
		if err := config.DB.Create(&entry).Error; err != nil {
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to log dose", nil)
			return
		}
	case err != nil:
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to read dose log", nil)
		return
	default:
		wasTaken = entry.Status == models.StatusTaken
		updates := map[string]interface{}{"status": input.Status, "actual_time": actualTime}
		if err := config.DB.Model(&entry).Updates(updates).Error; err != nil {
			utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update dose log", nil)
			return
		}
	}

	if input.Status == models.StatusTaken && !wasTaken && med.RemainingCount > 0 {
		config.DB.Model(&med).Update("remaining_count", med.RemainingCount-1)
	}

	utils.APIResponse(c, http.StatusOK, true, "Dose logged", entry)
}

// GetMedicationHistory returns a medication's log over the last N days.
func GetMedicationHistory(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))
	days := utils.StringToIntOr(c.Query("days"), 30)
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	logs := []models.DoseLog{}
	config.DB.
		Where("medication_id = ? AND date >= ?", id, cutoff).
		Order("date DESC, scheduled_time DESC").
		Find(&logs)

	utils.APIResponse(c, http.StatusOK, true, "Medication history", logs)
}

// GetLowStock lists medications at or below the display threshold.
func GetLowStock(c *gin.Context) {
	threshold := utils.StringToIntOr(c.Query("threshold"), scheduler.LowStockDisplayThreshold)

	meds := []models.Medication{}
	config.DB.
		Where("remaining_count <= ?", threshold).
		Order("remaining_count ASC").
		Find(&meds)

	utils.APIResponse(c, http.StatusOK, true, "Low stock medications", meds)
}
