package handlers

import (
	"net/http"
	"time"

	"dosebuddy-backend/internal/analytics"
	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GetAdherenceSummary returns totals and the adherence rate over ?days=.
func GetAdherenceSummary(c *gin.Context) {
	days := utils.StringToIntOr(c.Query("days"), 7)

	stats, err := analytics.AdherenceStats(config.DB, time.Now(), days)
	if err != nil {
		utils.APIResponse(c, http.StatusOK, true, "Adherence summary", analytics.Stats{})
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Adherence summary", stats)
}

// GetDailyAdherence feeds the stacked bar chart: per-day status counts.
func GetDailyAdherence(c *gin.Context) {
	days := utils.StringToIntOr(c.Query("days"), 7)

	breakdown, err := analytics.DailyBreakdown(config.DB, time.Now(), days)
	if err != nil || breakdown == nil {
		breakdown = []analytics.DayCount{}
	}
	utils.APIResponse(c, http.StatusOK, true, "Daily adherence", breakdown)
}

// GetStreak returns the run of consecutive perfect days.
func GetStreak(c *gin.Context) {
	streak, err := analytics.Streak(config.DB, time.Now())
	if err != nil {
		streak = 0
	}
	utils.APIResponse(c, http.StatusOK, true, "Adherence streak", gin.H{"streak": streak})
}

// GetMissedToday lists today's missed doses.
func GetMissedToday(c *gin.Context) {
	missed, err := analytics.MissedToday(config.DB, time.Now().Format("2006-01-02"))
	if err != nil || missed == nil {
		missed = []analytics.MissedDose{}
	}
	utils.APIResponse(c, http.StatusOK, true, "Missed today", missed)
}

// GetUpcomingDoses returns the next five scheduled doses.
func GetUpcomingDoses(c *gin.Context) {
	upcoming, err := analytics.UpcomingDoses(config.DB, time.Now(), 5)
	if err != nil || upcoming == nil {
		upcoming = []analytics.UpcomingDose{}
	}
	utils.APIResponse(c, http.StatusOK, true, "Upcoming doses", upcoming)
}
