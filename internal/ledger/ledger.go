// Package ledger keeps the set of completed (tracker, day) pairs and derives
// statistics from it.
package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tracker/internal/models"
)

// Change describes what a Toggle did to the ledger.
type Change int

const (
	ChangeNone Change = iota
	ChangeAdded
	ChangeRemoved
)

func (c Change) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	default:
		return "none"
	}
}

type key struct {
	trackerID string
	day       string
}

// Ledger is an in-memory set of completion records keyed by tracker and
// calendar day. It is not safe for concurrent use; owners serialize access.
type Ledger struct {
	records map[key]models.CompletionRecord
	now     func() time.Time
	loc     *time.Location
	newID   func() string
}

type Option func(*Ledger)

// WithClock sets the clock used to decide which days lie in the future.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLocation sets the location calendar days are read in.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithIDGenerator replaces the uuid generator for new records.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// New builds a ledger from a snapshot of records. Later duplicates of the
// same (tracker, day) pair are ignored.
func New(records []models.CompletionRecord, opts ...Option) *Ledger {
	l := &Ledger{
		records: make(map[key]models.CompletionRecord, len(records)),
		now:     time.Now,
		loc:     time.Local,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, r := range records {
		k := key{r.TrackerID, r.Day}
		if _, ok := l.records[k]; !ok {
			l.records[k] = r
		}
	}
	return l
}

// Day returns the calendar day of t in the ledger's location.
func (l *Ledger) Day(t time.Time) string {
	return models.DayOf(t.In(l.loc))
}

// Today returns the current calendar day per the ledger's clock.
func (l *Ledger) Today() string {
	return l.Day(l.now())
}

// IsFuture reports whether date falls on a calendar day after today.
func (l *Ledger) IsFuture(date time.Time) bool {
	// YYYY-MM-DD compares correctly as a string.
	return l.Day(date) > l.Today()
}

func (l *Ledger) IsCompleted(trackerID string, date time.Time) bool {
	_, ok := l.records[key{trackerID, l.Day(date)}]
	return ok
}

// Toggle flips the completion state of trackerID on date's calendar day.
// Completing a future day is refused and reported as ChangeNone. The
// returned record is the one added or removed.
func (l *Ledger) Toggle(trackerID string, date time.Time) (Change, models.CompletionRecord) {
	k := key{trackerID, l.Day(date)}
	if r, ok := l.records[k]; ok {
		delete(l.records, k)
		return ChangeRemoved, r
	}
	if k.day > l.Today() {
		return ChangeNone, models.CompletionRecord{}
	}
	r := models.CompletionRecord{
		ID:        l.newID(),
		TrackerID: trackerID,
		Day:       k.day,
		CreatedAt: l.now(),
	}
	l.records[k] = r
	return ChangeAdded, r
}

// Add inserts r unless its (tracker, day) pair is already present. It
// reports whether the ledger changed.
func (l *Ledger) Add(r models.CompletionRecord) bool {
	k := key{r.TrackerID, r.Day}
	if _, ok := l.records[k]; ok {
		return false
	}
	l.records[k] = r
	return true
}

// Remove deletes the record for trackerID on day. Missing pairs are a no-op.
func (l *Ledger) Remove(trackerID, day string) bool {
	k := key{trackerID, day}
	if _, ok := l.records[k]; !ok {
		return false
	}
	delete(l.records, k)
	return true
}

// RemoveTracker drops every record of trackerID and returns how many were removed.
func (l *Ledger) RemoveTracker(trackerID string) int {
	n := 0
	for k := range l.records {
		if k.trackerID == trackerID {
			delete(l.records, k)
			n++
		}
	}
	return n
}

// Records returns a copy of the ledger ordered by day, then tracker.
func (l *Ledger) Records() []models.CompletionRecord {
	out := make([]models.CompletionRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].TrackerID < out[j].TrackerID
	})
	return out
}

func (l *Ledger) TotalCompletions(trackerID string) int {
	n := 0
	for k := range l.records {
		if k.trackerID == trackerID {
			n++
		}
	}
	return n
}

func (l *Ledger) Len() int {
	return len(l.records)
}
