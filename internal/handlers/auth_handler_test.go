package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/internal/middleware"
	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	r := setupTest(t)
	r.POST("/auth/setup", Setup)
	r.POST("/auth/login", Login)

	protected := r.Group("/", middleware.AuthMiddleware())
	protected.GET("/protected", func(c *gin.Context) {
		utils.APIResponse(c, http.StatusOK, true, "OK", nil)
	})
	return r
}

func TestSetupRefusedOnceAccountExists(t *testing.T) {
	r := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/auth/setup", gin.H{"password": "hunter-22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/setup", gin.H{"password": "another-pw"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.Account{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/auth/setup", gin.H{"password": "hunter-22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{"password": "not-it"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWithoutAccount(t *testing.T) {
	r := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{"password": "hunter-22"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginTokenAcceptedByMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := setupAuthTest(t)

	w := doJSON(r, http.MethodPost, "/auth/setup", gin.H{"password": "hunter-22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", gin.H{"password": "hunter-22"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
