package models

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date format used by appointments.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used by appointments.
	ClockLayout = "15:04"
	// MinutesPerDay bounds every appointment window.
	MinutesPerDay = 24 * 60
)

// ParseDate validates a YYYY-MM-DD calendar date and returns it normalised.
func ParseDate(s string) (string, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d.Format(DateLayout), nil
}

// ParseClock converts an HH:MM time of day into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as HH:MM. A window ending exactly
// at midnight renders as "24:00".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
