package viewmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
)

// ValidationError lists every problem found in a TrackerForm.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid tracker: " + strings.Join(e.Problems, "; ")
}

// TrackerForm collects the fields of a tracker being created or edited.
type TrackerForm struct {
	ID         string
	Title      string
	Emoji      string
	Color      models.Color
	CategoryID string
	Kind       models.TrackerKind
	Schedule   models.Schedule
	Pinned     bool
	CreatedAt  time.Time
}

// NewTrackerForm returns an empty habit form using the first palette color.
func NewTrackerForm() *TrackerForm {
	return &TrackerForm{
		Kind:     models.TrackerKindHabit,
		Color:    models.MustParseColor(models.Palette[0]),
		Schedule: models.Schedule{},
	}
}

// FormFromTracker prefills a form for editing t.
func FormFromTracker(t models.Tracker) *TrackerForm {
	return &TrackerForm{
		ID:         t.ID,
		Title:      t.Title,
		Emoji:      t.Emoji,
		Color:      t.Color,
		CategoryID: t.CategoryID,
		Kind:       t.Kind(),
		Schedule:   t.Schedule.Clone(),
		Pinned:     t.IsPinned,
		CreatedAt:  t.CreatedAt,
	}
}

func (f *TrackerForm) IsEditing() bool {
	return f.ID != ""
}

// ToggleDay adds or removes d from the schedule.
func (f *TrackerForm) ToggleDay(d models.Weekday) {
	f.Schedule = f.Schedule.Toggle(d)
}

// TitleLength counts user-perceived characters in the title.
func (f *TrackerForm) TitleLength() int {
	return uniseg.GraphemeClusterCount(strings.TrimSpace(f.Title))
}

func (f *TrackerForm) Validate() error {
	var problems []string

	title := strings.TrimSpace(f.Title)
	switch {
	case title == "":
		problems = append(problems, "title is required")
	case f.TitleLength() > constants.MaxTitleLength:
		problems = append(problems, fmt.Sprintf("title is limited to %d characters", constants.MaxTitleLength))
	}

	if n := uniseg.GraphemeClusterCount(f.Emoji); n != 1 {
		problems = append(problems, "emoji must be a single character")
	}
	if f.CategoryID == "" {
		problems = append(problems, "category is required")
	}

	switch f.Kind {
	case models.TrackerKindHabit:
		if f.Schedule.IsEvent() {
			problems = append(problems, "a habit needs at least one weekday")
		}
	case models.TrackerKindEvent:
	default:
		problems = append(problems, fmt.Sprintf("unknown kind %q", f.Kind))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Build validates the form and returns the tracker it describes. New
// trackers receive newID() and now as their creation time.
func (f *TrackerForm) Build(newID func() string, now time.Time) (models.Tracker, error) {
	if err := f.Validate(); err != nil {
		return models.Tracker{}, err
	}

	t := models.Tracker{
		ID:         f.ID,
		Title:      strings.TrimSpace(f.Title),
		Emoji:      f.Emoji,
		Color:      f.Color,
		CategoryID: f.CategoryID,
		IsPinned:   f.Pinned,
		CreatedAt:  f.CreatedAt,
	}
	if f.Kind == models.TrackerKindHabit {
		t.Schedule = f.Schedule.Clone()
	} else {
		t.Schedule = models.Schedule{}
	}
	if t.ID == "" {
		t.ID = newID()
		t.CreatedAt = now
	}
	return t, nil
}
