package config

import (
	"log"
	"os"
	"path/filepath"

	"dosebuddy-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the SQLite file and migrates the schema. The whole app
// shares this one handle; SQLite serializes writers at the statement level,
// which is enough for one human plus one 30-second poll loop.
func ConnectDB() {
	path := EnvOr("DB_PATH", "data/dosebuddy.db")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Error creating data directory: %v", err)
		}
	}

	// WAL keeps the dashboard readable while the scheduler writes.
	dsn := "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Medication{},
		&models.DoseLog{},
		&models.Prescription{},
		&models.Guardian{},
		&models.LowStockAlert{},
		&models.Account{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	DB = db
	log.Println("Database ready:", path)
}

// EnvOr reads an environment variable with a fallback default.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
