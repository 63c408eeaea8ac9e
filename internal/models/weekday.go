package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weekday is a Monday-first day of the week: Monday=0 ... Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists every weekday in Monday-first order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Valid reports whether d is one of the seven known weekdays.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Short returns the three-letter abbreviation (Mon, Tue, ...).
func (d Weekday) Short() string {
	if !d.Valid() {
		return "?"
	}
	return weekdayNames[d][:3]
}

// FromTimeWeekday remaps Go's Sunday-first numbering onto the Monday-first ordinals.
func FromTimeWeekday(w time.Weekday) (Weekday, bool) {
	if w < time.Sunday || w > time.Saturday {
		return 0, false
	}
	return Weekday((int(w) + 6) % 7), true
}

// WeekdayOf returns the Monday-first weekday of t in t's own location.
func WeekdayOf(t time.Time) (Weekday, bool) {
	return FromTimeWeekday(t.Weekday())
}

var weekdayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseWeekday accepts English day names, their abbreviations, or a
// Monday-first ordinal (0=Monday, 6=Sunday).
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if wd, ok := weekdayAliases[s]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(s)
	if err == nil && Weekday(num).Valid() {
		return Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// Schedule is the set of weekdays a habit recurs on. An empty schedule marks
// a one-off event that is shown on every day.
type Schedule map[Weekday]struct{}

// NewSchedule builds a schedule from the given days. Invalid days are ignored.
func NewSchedule(days ...Weekday) Schedule {
	s := make(Schedule, len(days))
	for _, d := range days {
		if d.Valid() {
			s[d] = struct{}{}
		}
	}
	return s
}

// EveryDay returns a schedule containing all seven weekdays.
func EveryDay() Schedule {
	return NewSchedule(AllWeekdays...)
}

// ParseSchedule parses a comma-separated list of weekdays. The keywords
// "daily" and "weekdays" expand to the obvious sets; an empty string yields
// an event schedule.
func ParseSchedule(s string) (Schedule, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return Schedule{}, nil
	case "daily", "everyday":
		return EveryDay(), nil
	case "weekdays":
		return NewSchedule(Monday, Tuesday, Wednesday, Thursday, Friday), nil
	case "weekends":
		return NewSchedule(Saturday, Sunday), nil
	}

	sched := Schedule{}
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		sched[wd] = struct{}{}
	}
	return sched, nil
}

func (s Schedule) Contains(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// IsEvent reports whether the schedule is empty.
func (s Schedule) IsEvent() bool {
	return len(s) == 0
}

// Sorted returns the weekdays in Monday-first order.
func (s Schedule) Sorted() []Weekday {
	days := make([]Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Toggle returns a copy of s with d added or removed.
func (s Schedule) Toggle(d Weekday) Schedule {
	out := s.Clone()
	if out.Contains(d) {
		delete(out, d)
	} else if d.Valid() {
		out[d] = struct{}{}
	}
	return out
}

func (s Schedule) Equal(other Schedule) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if !other.Contains(d) {
			return false
		}
	}
	return true
}

func (s Schedule) String() string {
	switch {
	case s.IsEvent():
		return "event"
	case len(s) == 7:
		return "every day"
	}
	names := make([]string, 0, len(s))
	for _, d := range s.Sorted() {
		names = append(names, d.Short())
	}
	return strings.Join(names, ", ")
}

// MarshalJSON encodes the schedule as a sorted array of ordinals.
func (s Schedule) MarshalJSON() ([]byte, error) {
	ordinals := make([]int, 0, len(s))
	for _, d := range s.Sorted() {
		ordinals = append(ordinals, int(d))
	}
	return json.Marshal(ordinals)
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var ordinals []int
	if err := json.Unmarshal(data, &ordinals); err != nil {
		return err
	}
	out := make(Schedule, len(ordinals))
	for _, o := range ordinals {
		if !Weekday(o).Valid() {
			return fmt.Errorf("invalid weekday ordinal %d", o)
		}
		out[Weekday(o)] = struct{}{}
	}
	*s = out
	return nil
}

// EncodeSchedule serializes a schedule for storage.
func EncodeSchedule(s Schedule) ([]byte, error) {
	return s.MarshalJSON()
}

// DecodeSchedule is the inverse of EncodeSchedule. Data that cannot be
// decoded yields an empty (event) schedule.
func DecodeSchedule(data []byte) Schedule {
	if len(data) == 0 {
		return Schedule{}
	}
	var s Schedule
	if err := s.UnmarshalJSON(data); err != nil {
		return Schedule{}
	}
	return s
}
