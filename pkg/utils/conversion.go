package utils

import "strconv"

// StringToUint64 parses an ID from a URL parameter; 0 on failure.
func StringToUint64(str string) uint64 {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

// StringToIntOr parses an integer query parameter with a default.
func StringToIntOr(str string, def int) int {
	val, err := strconv.Atoi(str)
	if err != nil || val <= 0 {
		return def
	}
	return val
}
