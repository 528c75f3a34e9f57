package handlers

import (
	"net/http"

	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup creates the single local account. Refused once one exists.
func Setup(c *gin.Context) {
	var input models.SetupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid setup input", err.Error())
		return
	}

	var count int64
	config.DB.Model(&models.Account{}).Count(&count)
	if count > 0 {
		utils.APIResponse(c, http.StatusConflict, false, "Account already exists", nil)
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to hash password", nil)
		return
	}

	account := models.Account{PasswordHash: hash}
	if err := config.DB.Create(&account).Error; err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to create account", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Account created", nil)
}

// Login checks the password and returns a session token.
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid login input", err.Error())
		return
	}

	var account models.Account
	if err := config.DB.First(&account).Error; err != nil {
		utils.APIResponse(c, http.StatusUnauthorized, false, "No account set up yet", nil)
		return
	}

	if !utils.CheckPassword(input.Password, account.PasswordHash) {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Wrong password", nil)
		return
	}

	token, err := utils.GenerateToken()
	if err != nil {
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to generate token", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Login successful", gin.H{"token": token})
}
