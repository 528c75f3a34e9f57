package handlers

import (
	"net/http"
	"time"

	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaveGuardian creates or replaces the single guardian record.
func SaveGuardian(c *gin.Context) {
	var input models.SaveGuardianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid guardian input", err.Error())
		return
	}
	if err := input.Validate(); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	guardian := models.Guardian{
		PatientName:   input.PatientName,
		GuardianName:  input.GuardianName,
		GuardianPhone: input.GuardianPhone,
		Email:         input.Email,
		AlertsEnabled: true,
		AddedDate:     time.Now().Format("2006-01-02"),
	}

	// Delete-then-insert keeps the table a singleton.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Guardian{}).Error; err != nil {
			return err
		}
		return tx.Create(&guardian).Error
	})
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to save guardian", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Guardian saved", guardian)
}

// GetGuardian returns the configured guardian, or an empty success when
// none is set.
func GetGuardian(c *gin.Context) {
	var guardian models.Guardian
	if err := config.DB.Order("id DESC").First(&guardian).Error; err != nil {
		utils.APIResponse(c, http.StatusOK, true, "No guardian configured", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Guardian", guardian)
}

func DeleteGuardian(c *gin.Context) {
	if err := config.DB.Where("1 = 1").Delete(&models.Guardian{}).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete guardian", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Guardian removed", nil)
}

// ToggleAlerts flips WhatsApp alerting on or off.
func ToggleAlerts(c *gin.Context) {
	var input models.ToggleAlertsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid toggle input", err.Error())
		return
	}

	result := config.DB.Model(&models.Guardian{}).Where("1 = 1").Update("alerts_enabled", *input.Enabled)
	if result.Error != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update alerts", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.APIResponse(c, http.StatusNotFound, false, "No guardian configured", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Alert setting updated", gin.H{"enabled": *input.Enabled})
}

// TestGuardian pushes a connectivity-test message through the dispatcher.
// The classified (ok, message) result comes back whatever happens.
func TestGuardian(c *gin.Context) {
	if Dispatcher == nil {
		utils.APIResponse(c, http.StatusServiceUnavailable, false, "Notifications not configured", nil)
		return
	}

	ok, detail := Dispatcher.TestPing(c.Request.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusBadGateway
	}
	utils.APIResponse(c, status, ok, detail, nil)
}
