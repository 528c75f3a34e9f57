package scheduler

import (
	"context"
	"testing"
	"time"

	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLowStockChecker(db *gorm.DB, guardian *fakeGuardianChannel) *LowStockChecker {
	dispatcher := notify.New(db, &fakeDesktopChannel{}, guardian, nil)
	return &LowStockChecker{DB: db, Dispatcher: dispatcher}
}

func TestLowStockAlertFiresOncePerDay(t *testing.T) {
	db := newTestDB(t)
	seedGuardian(t, db, true)
	med := seedMedication(t, db, "10:00", 5)

	guardian := &fakeGuardianChannel{}
	checker := newLowStockChecker(db, guardian)

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	require.NoError(t, checker.Run(context.Background(), now))

	require.Len(t, guardian.bodies, 1)
	assert.Contains(t, guardian.bodies[0], "LOW STOCK ALERT")
	assert.Contains(t, guardian.bodies[0], "5 doses")

	var markers []models.LowStockAlert
	require.NoError(t, db.Find(&markers).Error)
	require.Len(t, markers, 1)
	assert.Equal(t, med.ID, markers[0].MedicationID)
	assert.Equal(t, "2026-08-28", markers[0].AlertDate)

	// Same day again: the marker suppresses a second send.
	require.NoError(t, checker.Run(context.Background(), now.Add(time.Hour)))
	assert.Len(t, guardian.bodies, 1)
}

func TestLowStockNoAlertAboveStrictThreshold(t *testing.T) {
	// 6 remaining shows on the dashboard as low, but does not alert.
	db := newTestDB(t)
	seedGuardian(t, db, true)
	seedMedication(t, db, "10:00", 6)

	guardian := &fakeGuardianChannel{}
	checker := newLowStockChecker(db, guardian)

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	require.NoError(t, checker.Run(context.Background(), now))
	assert.Empty(t, guardian.bodies)
}

func TestLowStockAlertsAgainNextDay(t *testing.T) {
	db := newTestDB(t)
	seedGuardian(t, db, true)
	med := seedMedication(t, db, "10:00", 3)

	require.NoError(t, db.Create(&models.LowStockAlert{
		MedicationID: med.ID,
		AlertDate:    "2026-08-27",
	}).Error)

	guardian := &fakeGuardianChannel{}
	checker := newLowStockChecker(db, guardian)

	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	require.NoError(t, checker.Run(context.Background(), now))
	assert.Len(t, guardian.bodies, 1)
}
