package models

import "time"

type TrackerKind string

const (
	TrackerKindHabit TrackerKind = "habit"
	TrackerKindEvent TrackerKind = "event"
)

// Tracker is a user-defined habit (recurring on Schedule) or one-off event
// (empty Schedule). Trackers are treated as values: an edit replaces the
// stored record with a new value sharing the same ID.
type Tracker struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Color      Color     `json:"color"`
	Emoji      string    `json:"emoji"`
	Schedule   Schedule  `json:"schedule"`
	IsPinned   bool      `json:"is_pinned"`
	CategoryID string    `json:"category_id,omitempty"` // empty means uncategorized
	CreatedAt  time.Time `json:"created_at"`
}

func (t Tracker) IsEvent() bool {
	return t.Schedule.IsEvent()
}

func (t Tracker) Kind() TrackerKind {
	if t.IsEvent() {
		return TrackerKindEvent
	}
	return TrackerKindHabit
}

// WithPinned returns a copy of t with the pin flag set.
func (t Tracker) WithPinned(pinned bool) Tracker {
	t.Schedule = t.Schedule.Clone()
	t.IsPinned = pinned
	return t
}

// WithCategory returns a copy of t moved to another category.
func (t Tracker) WithCategory(categoryID string) Tracker {
	t.Schedule = t.Schedule.Clone()
	t.CategoryID = categoryID
	return t
}

// Category is a named grouping of trackers. Membership is derived from
// Tracker.CategoryID rather than stored on the category.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Group is a category as rendered: a title plus its visible trackers.
type Group struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Pinned   bool      `json:"pinned"` // synthetic group of pinned trackers, never persisted
	Trackers []Tracker `json:"trackers"`
}
