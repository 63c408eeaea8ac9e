// Package validation checks stored trackers, categories and completion
// records for data that the application would never write itself, such as
// rows left behind by a restore, a manual edit or an older build.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateCategory ConflictType = "duplicate_category_title"
	ConflictOrphanCategory    ConflictType = "orphan_category"
	ConflictOrphanRecord      ConflictType = "orphan_record"
	ConflictInvalidDay        ConflictType = "invalid_day"
	ConflictFutureRecord      ConflictType = "future_record"
	ConflictTitleTooLong      ConflictType = "title_too_long"
	ConflictInvalidEmoji      ConflictType = "invalid_emoji"
)

// Conflict represents one detected problem.
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // titles involved
	IDs         []string // ids of the trackers or categories involved
	Records     []models.CompletionRecord
}

// Fixable reports whether AutoFix knows how to repair the conflict.
func (c Conflict) Fixable() bool {
	return len(c.Records) > 0
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks a snapshot of the store.
type Validator struct {
	now func() time.Time
	loc *time.Location
}

// New creates a Validator that judges "future" by now in loc.
func New(now func() time.Time, loc *time.Location) *Validator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Validator{now: now, loc: loc}
}

// Validate runs every check and returns the conflicts in a stable order.
func (v *Validator) Validate(trackers []models.Tracker, categories []models.Category, records []models.CompletionRecord) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, duplicateCategories(categories)...)
	result.Conflicts = append(result.Conflicts, checkTrackers(trackers, categories)...)
	result.Conflicts = append(result.Conflicts, v.checkRecords(trackers, records)...)
	return result
}

func duplicateCategories(categories []models.Category) []Conflict {
	fold := cases.Fold()
	byTitle := make(map[string][]models.Category)
	var order []string
	for _, c := range categories {
		k := fold.String(strings.TrimSpace(c.Title))
		if _, ok := byTitle[k]; !ok {
			order = append(order, k)
		}
		byTitle[k] = append(byTitle[k], c)
	}

	var conflicts []Conflict
	for _, k := range order {
		group := byTitle[k]
		if len(group) < 2 {
			continue
		}
		var titles, ids []string
		for _, c := range group {
			titles = append(titles, c.Title)
			ids = append(ids, c.ID)
		}
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateCategory,
			Description: fmt.Sprintf("Duplicate category title: %q (IDs: %v)", group[0].Title, ids),
			Items:       titles,
			IDs:         ids,
		})
	}
	return conflicts
}

func checkTrackers(trackers []models.Tracker, categories []models.Category) []Conflict {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}

	var conflicts []Conflict
	for _, t := range trackers {
		if t.CategoryID != "" {
			if _, ok := known[t.CategoryID]; !ok {
				conflicts = append(conflicts, Conflict{
					Type:        ConflictOrphanCategory,
					Description: fmt.Sprintf("Tracker %q refers to missing category %s", t.Title, t.CategoryID),
					Items:       []string{t.Title},
					IDs:         []string{t.ID},
				})
			}
		}
		if n := uniseg.GraphemeClusterCount(t.Title); n > constants.MaxTitleLength {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictTitleTooLong,
				Description: fmt.Sprintf("Tracker %q has a %d character title (limit %d)", t.Title, n, constants.MaxTitleLength),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
		}
		if t.Emoji != "" && uniseg.GraphemeClusterCount(t.Emoji) != 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidEmoji,
				Description: fmt.Sprintf("Tracker %q has emoji %q, expected a single character", t.Title, t.Emoji),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
		}
	}
	return conflicts
}

func (v *Validator) checkRecords(trackers []models.Tracker, records []models.CompletionRecord) []Conflict {
	known := make(map[string]string, len(trackers))
	for _, t := range trackers {
		known[t.ID] = t.Title
	}

	orphans := make(map[string][]models.CompletionRecord)
	var badDays, future []models.CompletionRecord
	now := v.now()
	for _, r := range records {
		if _, ok := known[r.TrackerID]; !ok {
			orphans[r.TrackerID] = append(orphans[r.TrackerID], r)
			continue
		}
		day, err := models.ParseDay(r.Day, v.loc)
		if err != nil {
			badDays = append(badDays, r)
			continue
		}
		if utils.IsAfterDay(day, now, v.loc) {
			future = append(future, r)
		}
	}

	var conflicts []Conflict
	ids := make([]string, 0, len(orphans))
	for id := range orphans {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictOrphanRecord,
			Description: fmt.Sprintf("%d completion record(s) for unknown tracker %s", len(orphans[id]), id),
			IDs:         []string{id},
			Records:     orphans[id],
		})
	}
	for _, r := range badDays {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidDay,
			Description: fmt.Sprintf("Tracker %q has a completion on invalid day %q", known[r.TrackerID], r.Day),
			Items:       []string{known[r.TrackerID]},
			IDs:         []string{r.TrackerID},
			Records:     []models.CompletionRecord{r},
		})
	}
	for _, r := range future {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictFutureRecord,
			Description: fmt.Sprintf("Tracker %q is marked complete on %s, which is in the future", known[r.TrackerID], r.Day),
			Items:       []string{known[r.TrackerID]},
			IDs:         []string{r.TrackerID},
			Records:     []models.CompletionRecord{r},
		})
	}
	return conflicts
}

// AutoFix deletes the completion records behind fixable conflicts. Failed
// deletions are reported in the action text and do not stop the run.
func AutoFix(conflicts []Conflict, deleteRecord func(trackerID, day string) error) []FixAction {
	actions := []FixAction{}
	for _, c := range conflicts {
		if !c.Fixable() {
			continue
		}

		var removed, failed []string
		for _, r := range c.Records {
			if err := deleteRecord(r.TrackerID, r.Day); err != nil {
				failed = append(failed, r.Day)
				continue
			}
			removed = append(removed, r.Day)
		}

		if len(removed) == 0 && len(failed) == 0 {
			continue
		}
		msg := fmt.Sprintf("Removed %d completion record(s) (%s)", len(removed), c.Type)
		if len(failed) > 0 {
			msg += fmt.Sprintf(" (failed to remove: %v)", failed)
		}
		actions = append(actions, FixAction{Action: msg, SourceConflict: c})
	}
	return actions
}
