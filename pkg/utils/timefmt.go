package utils

import (
	"strconv"
	"strings"
)

// Format12Hour converts "HH:MM" to "H:MM AM/PM" for notification bodies.
// Malformed input is returned as-is rather than erroring.
func Format12Hour(timeStr string) string {
	parts := strings.SplitN(strings.TrimSpace(timeStr), ":", 2)
	if len(parts) != 2 {
		return timeStr
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return timeStr
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	if hour == 0 {
		hour = 12
	} else if hour > 12 {
		hour -= 12
	}
	return strconv.Itoa(hour) + ":" + parts[1] + " " + period
}
