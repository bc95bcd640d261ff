// Package timefmt validates the wire formats used for calendar dates and
// clock times. Both travel as plain strings: dates as zero-padded
// YYYY-MM-DD, times as zero-padded HH:MM, so lexicographic comparison is
// order-equivalent to chronological comparison.
package timefmt

import (
	"regexp"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidDate accepts real, zero-padded YYYY-MM-DD calendar dates only.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime accepts zero-padded HH:MM clock times only.
func ValidTime(s string) bool {
	if !timePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
