package scheduler

import (
	"context"
	"testing"
	"time"

	"dosebuddy-backend/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderFiresOnceInsideWindow(t *testing.T) {
	db := newTestDB(t)
	seedMedication(t, db, "10:00", 30)

	desktop := &fakeDesktopChannel{}
	reminder := &Reminder{
		DB:         db,
		Dispatcher: notify.New(db, desktop, &fakeGuardianChannel{}, nil),
	}

	now := time.Date(2026, 8, 28, 10, 0, 10, 0, time.Local)
	require.NoError(t, reminder.Run(context.Background(), now))
	require.Len(t, desktop.titles, 1)
	assert.Contains(t, desktop.titles[0], "Paracetamol")

	// Next tick, still within the minute: dedup holds.
	require.NoError(t, reminder.Run(context.Background(), now.Add(20*time.Second)))
	assert.Len(t, desktop.titles, 1)
}

func TestReminderOutsideWindowIsSilent(t *testing.T) {
	db := newTestDB(t)
	seedMedication(t, db, "10:00", 30)

	desktop := &fakeDesktopChannel{}
	reminder := &Reminder{
		DB:         db,
		Dispatcher: notify.New(db, desktop, &fakeGuardianChannel{}, nil),
	}

	require.NoError(t, reminder.Run(context.Background(),
		time.Date(2026, 8, 28, 9, 59, 50, 0, time.Local)))
	require.NoError(t, reminder.Run(context.Background(),
		time.Date(2026, 8, 28, 10, 1, 30, 0, time.Local)))
	assert.Empty(t, desktop.titles)
}
