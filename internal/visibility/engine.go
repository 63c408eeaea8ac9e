// Package visibility decides which trackers are shown for a day and how they
// are grouped.
package visibility

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
)

// CategoryLookup resolves a category id to its title.
type CategoryLookup func(categoryID string) (string, bool)

// CompletionPredicate reports whether a tracker was completed on date.
type CompletionPredicate func(trackerID string, date time.Time) bool

// Query is the user-controlled part of a visibility computation.
type Query struct {
	Date   time.Time
	Search string
	Filter models.Filter
}

// Engine computes visible groups. The zero value is not usable; use New.
type Engine struct {
	pinnedTitle string
	lang        language.Tag
	newID       func() string
}

type Option func(*Engine)

// WithPinnedTitle sets the title of the synthetic pinned group.
func WithPinnedTitle(title string) Option {
	return func(e *Engine) {
		if title != "" {
			e.pinnedTitle = title
		}
	}
}

// WithLanguage sets the language used for case folding and title collation.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) {
		e.lang = tag
	}
}

// WithIDGenerator replaces the id source of the pinned group.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		pinnedTitle: constants.DefaultPinnedTitle,
		lang:        language.Und,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute is a convenience wrapper around a default Engine.
func Compute(q Query, trackers []models.Tracker, lookup CategoryLookup, completed CompletionPredicate) []models.Group {
	return New().Compute(q, trackers, lookup, completed)
}

// Compute returns the groups visible for q. The pinned group, when present,
// comes first; real categories follow sorted by title. Trackers without a
// resolvable category are not shown unless pinned.
func (e *Engine) Compute(q Query, trackers []models.Tracker, lookup CategoryLookup, completed CompletionPredicate) []models.Group {
	weekday, ok := models.WeekdayOf(q.Date)
	if !ok {
		return nil
	}
	if completed == nil {
		completed = func(string, time.Time) bool { return false }
	}

	// Caser and Collator carry internal state; one per call.
	fold := cases.Fold()
	needle := fold.String(q.Search)

	var pinned []models.Tracker
	byCategory := make(map[string][]models.Tracker)
	var order []string

	for _, t := range trackers {
		if !DayMatches(t, weekday) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(t.Title), needle) {
			continue
		}
		switch q.Filter {
		case models.FilterCompleted:
			if !completed(t.ID, q.Date) {
				continue
			}
		case models.FilterIncomplete:
			if completed(t.ID, q.Date) {
				continue
			}
		}

		if t.IsPinned {
			pinned = append(pinned, t)
			continue
		}
		if t.CategoryID == "" {
			continue
		}
		if _, seen := byCategory[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		byCategory[t.CategoryID] = append(byCategory[t.CategoryID], t)
	}

	groups := make([]models.Group, 0, len(order))
	for _, id := range order {
		title, ok := "", false
		if lookup != nil {
			title, ok = lookup(id)
		}
		if !ok {
			continue
		}
		groups = append(groups, models.Group{ID: id, Title: title, Trackers: byCategory[id]})
	}

	col := collate.New(e.lang, collate.IgnoreCase)
	sort.SliceStable(groups, func(i, j int) bool {
		if c := col.CompareString(groups[i].Title, groups[j].Title); c != 0 {
			return c < 0
		}
		if groups[i].Title != groups[j].Title {
			return groups[i].Title < groups[j].Title
		}
		return groups[i].ID < groups[j].ID
	})

	if len(pinned) == 0 {
		return groups
	}
	out := make([]models.Group, 0, len(groups)+1)
	out = append(out, models.Group{
		ID:       e.newID(),
		Title:    e.pinnedTitle,
		Pinned:   true,
		Trackers: pinned,
	})
	return append(out, groups...)
}

// DayMatches reports whether t is scheduled on weekday. Events match every day.
func DayMatches(t models.Tracker, weekday models.Weekday) bool {
	return t.Schedule.IsEvent() || t.Schedule.Contains(weekday)
}

// SearchMatches reports whether title contains search, ignoring case.
// An empty search matches everything.
func SearchMatches(title, search string) bool {
	if search == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(title), fold.String(search))
}

// HasTrackersOn reports whether any tracker is scheduled on date's weekday,
// regardless of search, filter or category.
func HasTrackersOn(trackers []models.Tracker, date time.Time) bool {
	weekday, ok := models.WeekdayOf(date)
	if !ok {
		return false
	}
	for _, t := range trackers {
		if DayMatches(t, weekday) {
			return true
		}
	}
	return false
}
