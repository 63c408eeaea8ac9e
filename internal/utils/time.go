package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tracker/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsAfterDay reports whether t falls on a later calendar day than ref, both
// read in loc. Times later on the same day are not "after".
func IsAfterDay(t, ref time.Time, loc *time.Location) bool {
	return StartOfDay(t.In(loc)).After(StartOfDay(ref.In(loc)))
}

// ResolveDate interprets a user supplied date. "today", "yesterday" and
// "tomorrow" are relative to now; anything else must be YYYY-MM-DD.
func ResolveDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	now = now.In(loc)
	switch input {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}
	t, err := ParseDateInLocation(input, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected %s, today, yesterday or tomorrow)", input, constants.DateFormat)
	}
	return t, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
