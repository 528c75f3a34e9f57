package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"dosebuddy-backend/internal/analytics"
	"dosebuddy-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Guardian{}, &models.LowStockAlert{}))
	return db
}

type recordingChannel struct {
	to     []string
	bodies []string
}

func (r *recordingChannel) Send(ctx context.Context, toPhone, body string) (bool, string) {
	r.to = append(r.to, toPhone)
	r.bodies = append(r.bodies, body)
	return true, "sent"
}

type silentDesktop struct{}

func (silentDesktop) Notify(title, body string) error { return nil }

func testMedication() models.Medication {
	return models.Medication{
		ID:             1,
		Name:           "Metformin",
		Dosage:         "850mg",
		RemainingCount: 4,
	}
}

func saveGuardian(t *testing.T, db *gorm.DB, enabled bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.Guardian{
		PatientName:   "Asha",
		GuardianName:  "Ravi",
		GuardianPhone: "+919876543210",
		AlertsEnabled: enabled,
		AddedDate:     "2026-08-28",
	}).Error)
}

func TestMissedDoseWithoutGuardian(t *testing.T) {
	db := newTestDB(t)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	ok, msg := d.MissedDose(context.Background(), testMedication(), "10:00")
	assert.False(t, ok)
	assert.Contains(t, msg, "not configured")
	assert.Empty(t, channel.bodies)
}

func TestMissedDoseWithAlertsDisabled(t *testing.T) {
	db := newTestDB(t)
	saveGuardian(t, db, false)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	ok, _ := d.MissedDose(context.Background(), testMedication(), "10:00")
	assert.False(t, ok)
	assert.Empty(t, channel.bodies)
}

func TestMissedDoseBody(t *testing.T) {
	db := newTestDB(t)
	saveGuardian(t, db, true)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	ok, _ := d.MissedDose(context.Background(), testMedication(), "22:30")
	require.True(t, ok)
	require.Len(t, channel.bodies, 1)

	body := channel.bodies[0]
	assert.Contains(t, body, "MEDICATION ALERT")
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "Metformin (850mg)")
	assert.Contains(t, body, "10:30 PM")
}

func TestLowStockRecordsMarker(t *testing.T) {
	db := newTestDB(t)
	saveGuardian(t, db, true)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	ok, _ := d.LowStock(context.Background(), testMedication(), "2026-08-28")
	require.True(t, ok)

	var markers []models.LowStockAlert
	require.NoError(t, db.Find(&markers).Error)
	require.Len(t, markers, 1)
	assert.Equal(t, uint64(1), markers[0].MedicationID)
	assert.Equal(t, "2026-08-28", markers[0].AlertDate)
}

func TestDailySummaryFeedback(t *testing.T) {
	db := newTestDB(t)
	saveGuardian(t, db, true)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	now := time.Date(2026, 8, 28, 22, 0, 0, 0, time.Local)

	ok, _ := d.DailySummary(context.Background(), now, analytics.Stats{
		TotalDoses: 3, Taken: 3, AdherenceRate: 100,
	})
	require.True(t, ok)
	assert.Contains(t, channel.bodies[0], "Perfect day!")

	ok, _ = d.DailySummary(context.Background(), now, analytics.Stats{
		TotalDoses: 5, Taken: 4, Missed: 1, AdherenceRate: 80,
	})
	require.True(t, ok)
	assert.Contains(t, channel.bodies[1], "Good job!")
	assert.Contains(t, channel.bodies[1], "August 28, 2026")
}

func TestTestPingWorksEvenWhenAlertsDisabled(t *testing.T) {
	db := newTestDB(t)
	saveGuardian(t, db, false)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	ok, _ := d.TestPing(context.Background())
	assert.True(t, ok)
	assert.Len(t, channel.bodies, 1)
}

func TestTestPingWithoutGuardian(t *testing.T) {
	db := newTestDB(t)
	channel := &recordingChannel{}
	d := New(db, silentDesktop{}, channel, nil)

	ok, msg := d.TestPing(context.Background())
	assert.False(t, ok)
	assert.Contains(t, msg, "No guardian")
}
