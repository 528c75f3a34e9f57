package scheduler

import (
	"strings"
	"time"
)

// ParseClock parses an "HH:MM" wall-clock string. ok is false on malformed
// input; callers treat that as a non-match so one bad schedule entry can
// never take down the poll loop.
func ParseClock(s string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// instantToday anchors a wall-clock time to now's date, in local time.
// No timezone handling beyond now's own location.
func instantToday(hour, minute int, now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

// MinutesSince returns the minutes elapsed between today-at-clock and now.
// Negative means the scheduled instant is still ahead. ok is false when the
// clock string does not parse.
func MinutesSince(clock string, now time.Time) (float64, bool) {
	hour, minute, ok := ParseClock(clock)
	if !ok {
		return 0, false
	}
	return now.Sub(instantToday(hour, minute, now)).Minutes(), true
}
