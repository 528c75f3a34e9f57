package routes

import (
	"dosebuddy-backend/internal/handlers"
	"dosebuddy-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/setup", handlers.Setup)
			auth.POST("/login", handlers.Login)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Medications and dose logging
			protected.POST("/medications", handlers.AddMedication)
			protected.GET("/medications", handlers.GetMedications)
			protected.GET("/medications/low-stock", handlers.GetLowStock)
			protected.GET("/medications/:id", handlers.GetMedication)
			protected.DELETE("/medications/:id", handlers.DeleteMedication)
			protected.PATCH("/medications/:id/stock", handlers.UpdateStock)
			protected.POST("/medications/:id/doses", handlers.LogDose)
			protected.GET("/medications/:id/history", handlers.GetMedicationHistory)

			// Guardian contact
			protected.GET("/guardian", handlers.GetGuardian)
			protected.PUT("/guardian", handlers.SaveGuardian)
			protected.DELETE("/guardian", handlers.DeleteGuardian)
			protected.PATCH("/guardian/alerts", handlers.ToggleAlerts)
			protected.POST("/guardian/test", handlers.TestGuardian)

			// Dashboard analytics
			protected.GET("/analytics/summary", handlers.GetAdherenceSummary)
			protected.GET("/analytics/daily", handlers.GetDailyAdherence)
			protected.GET("/analytics/streak", handlers.GetStreak)
			protected.GET("/analytics/missed-today", handlers.GetMissedToday)
			protected.GET("/analytics/upcoming", handlers.GetUpcomingDoses)

			// Prescription references
			protected.POST("/prescriptions", handlers.UploadPrescription)
			protected.GET("/prescriptions", handlers.GetPrescriptions)
			protected.DELETE("/prescriptions/:id", handlers.DeletePrescription)

			// Maintenance
			protected.GET("/admin/export", handlers.ExportData)
			protected.POST("/admin/reset", handlers.ResetData)
			protected.GET("/admin/counts", handlers.GetCounts)
		}
	}
}
