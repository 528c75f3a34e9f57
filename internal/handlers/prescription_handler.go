package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const prescriptionDir = "data/prescriptions"

// UploadPrescription stores a prescription image and links it to a
// medication. The image itself is just a file on disk; only the reference
// lives in the database.
func UploadPrescription(c *gin.Context) {
	medID := utils.StringToUint64(c.PostForm("medication_id"))

	var med models.Medication
	if err := config.DB.First(&med, medID).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Medication not found", nil)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Missing prescription image", nil)
		return
	}

	if err := os.MkdirAll(prescriptionDir, 0o755); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to prepare storage", nil)
		return
	}

	name := fmt.Sprintf("prescription_%d_%s_%s",
		medID, time.Now().Format("20060102_150405"), filepath.Base(file.Filename))
	path := filepath.Join(prescriptionDir, name)

	if err := c.SaveUploadedFile(file, path); err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to save image", nil)
		return
	}

	presc := models.Prescription{
		MedicationID: medID,
		ImagePath:    path,
		UploadDate:   time.Now().Format("2006-01-02"),
	}
	if err := config.DB.Create(&presc).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to save prescription", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Prescription uploaded", presc)
}

func GetPrescriptions(c *gin.Context) {
	prescs := []models.Prescription{}
	config.DB.Order("upload_date DESC").Find(&prescs)
	utils.APIResponse(c, http.StatusOK, true, "Prescriptions", prescs)
}

func DeletePrescription(c *gin.Context) {
	id := utils.StringToUint64(c.Param("id"))

	var presc models.Prescription
	if err := config.DB.First(&presc, id).Error; err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Prescription not found", nil)
		return
	}

	if err := config.DB.Delete(&presc).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to delete prescription", nil)
		return
	}
	// Best-effort file cleanup; a stale image is harmless.
	os.Remove(presc.ImagePath)

	utils.APIResponse(c, http.StatusOK, true, "Prescription deleted", nil)
}
