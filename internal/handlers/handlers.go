package handlers

import "dosebuddy-backend/internal/notify"

// Dispatcher is wired in from main so the guardian test endpoint can reach
// the notification channels.
var Dispatcher *notify.Dispatcher
