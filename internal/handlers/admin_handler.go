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

// ExportData dumps every domain table for backup.
func ExportData(c *gin.Context) {
	meds := []models.Medication{}
	logs := []models.DoseLog{}
	guardians := []models.Guardian{}
	prescs := []models.Prescription{}
	markers := []models.LowStockAlert{}

	config.DB.Find(&meds)
	config.DB.Find(&logs)
	config.DB.Find(&guardians)
	config.DB.Find(&prescs)
	config.DB.Find(&markers)

	utils.APIResponse(c, http.StatusOK, true, "Export", gin.H{
		"medications":      meds,
		"schedule_log":     logs,
		"guardian":         guardians,
		"prescriptions":    prescs,
		"low_stock_alerts": markers,
		"export_date":      time.Now().Format("2006-01-02 15:04:05"),
	})
}

// ResetData wipes every domain table. The account row survives so the
// owner is not locked out.
func ResetData(c *gin.Context) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.DoseLog{},
			&models.Prescription{},
			&models.LowStockAlert{},
			&models.Guardian{},
			&models.Medication{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to reset data", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "All data cleared", nil)
}

// GetCounts returns table sizes for the settings page.
func GetCounts(c *gin.Context) {
	var meds, logs, prescs int64
	config.DB.Model(&models.Medication{}).Count(&meds)
	config.DB.Model(&models.DoseLog{}).Count(&logs)
	config.DB.Model(&models.Prescription{}).Count(&prescs)

	utils.APIResponse(c, http.StatusOK, true, "Counts", gin.H{
		"medications":   meds,
		"dose_logs":     logs,
		"prescriptions": prescs,
	})
}
