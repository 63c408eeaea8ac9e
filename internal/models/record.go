package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tracker/internal/constants"
)

// CompletionRecord marks a tracker as done on one calendar day. The pair
// (TrackerID, Day) is the record's identity.
type CompletionRecord struct {
	ID        string    `json:"id"`
	TrackerID string    `json:"tracker_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}

// DayOf truncates t to its calendar day in t's own location.
func DayOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD day into midnight of that day in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// Filter selects which of the day's trackers are shown.
type Filter int

const (
	FilterAll Filter = iota
	FilterToday
	FilterCompleted
	FilterIncomplete
)

// AllFilters lists the filters in menu order.
var AllFilters = []Filter{FilterAll, FilterToday, FilterCompleted, FilterIncomplete}

var filterNames = map[Filter]string{
	FilterAll:        "all",
	FilterToday:      "today",
	FilterCompleted:  "completed",
	FilterIncomplete: "incomplete",
}

func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return FilterAll, nil
	}
	for f, name := range filterNames {
		if name == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("invalid filter: %s (expected all, today, completed or incomplete)", s)
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Title is the menu label for the filter.
func (f Filter) Title() string {
	switch f {
	case FilterAll:
		return "All trackers"
	case FilterToday:
		return "Trackers for today"
	case FilterCompleted:
		return "Completed"
	case FilterIncomplete:
		return "Not completed"
	default:
		return f.String()
	}
}

// IsActive reports whether the filter narrows the list beyond the day's schedule.
func (f Filter) IsActive() bool {
	return f == FilterCompleted || f == FilterIncomplete
}
