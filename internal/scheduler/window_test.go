package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"08:30", 8, 30, true},
		{"00:00", 0, 0, true},
		{"23:59", 23, 59, true},
		{" 10:00 ", 10, 0, true},
		{"24:00", 0, 0, false},
		{"10:60", 0, 0, false},
		{"ten o'clock", 0, 0, false},
		{"", 0, 0, false},
		{"10", 0, 0, false},
	}

	for _, tt := range tests {
		hour, minute, ok := ParseClock(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.hour, hour, "input %q", tt.in)
			assert.Equal(t, tt.minute, minute, "input %q", tt.in)
		}
	}
}

func TestMinutesSince(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 1, 30, 0, time.Local)

	elapsed, ok := MinutesSince("10:00", now)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, elapsed, 0.001)

	// Scheduled instant still ahead.
	elapsed, ok = MinutesSince("10:30", now)
	assert.True(t, ok)
	assert.InDelta(t, -28.5, elapsed, 0.001)

	// Malformed schedule strings are non-matches, never errors.
	_, ok = MinutesSince("banana", now)
	assert.False(t, ok)
}
