package main

import (
	"context"
	"log"
	"os"

	"dosebuddy-backend/internal/config"
	"dosebuddy-backend/internal/handlers"
	"dosebuddy-backend/internal/notify"
	"dosebuddy-backend/internal/routes"
	"dosebuddy-backend/internal/scheduler"
	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config.ConnectDB()

	dispatcher := buildDispatcher()
	handlers.Dispatcher = dispatcher

	// Background polling loop: missed doses, reminders, low stock, summary.
	loop := scheduler.New(
		config.DB,
		dispatcher,
		config.EnvOr("LOW_STOCK_CHECK_AT", "09:00"),
		config.EnvOr("DAILY_SUMMARY_AT", "22:00"),
	)
	loop.Start(context.Background())

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, 200, true, "Server OK!", nil)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("DoseBuddy backend listening on port " + port)
	r.Run(":" + port)
}

// buildDispatcher wires the notification channels from the environment.
// Missing Twilio credentials leave the guardian channel in a stub that
// reports itself unconfigured; a missing Firebase setup just disables push.
func buildDispatcher() *notify.Dispatcher {
	var guardian notify.GuardianChannel = notify.UnconfiguredGuardian{}

	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := config.EnvOr("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886")
	if sid != "" && token != "" {
		guardian = notify.NewTwilioChannel(sid, token, from)
		log.Println("WhatsApp alerts enabled")
	} else {
		log.Println("Warning: Twilio credentials not set, guardian alerts disabled")
	}

	var push notify.PushChannel
	credFile := os.Getenv("FIREBASE_CREDENTIALS")
	deviceToken := os.Getenv("FCM_DEVICE_TOKEN")
	if credFile != "" && deviceToken != "" {
		fcm, err := notify.NewFCMChannel(context.Background(), credFile, deviceToken)
		if err != nil {
			log.Printf("Warning: device push disabled: %v", err)
		} else {
			push = fcm
			log.Println("Device push enabled")
		}
	}

	return notify.New(config.DB, notify.BeeepChannel{}, guardian, push)
}
