package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tracker/internal/models"
)

var now = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

func newValidator() *Validator {
	return New(func() time.Time { return now }, time.UTC)
}

func conflictsOfType(result ValidationResult, typ ConflictType) []Conflict {
	var out []Conflict
	for _, c := range result.Conflicts {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

func TestValidate_NoConflicts(t *testing.T) {
	categories := []models.Category{{ID: "health", Title: "Health"}}
	trackers := []models.Tracker{{ID: "run", Title: "Running", Emoji: "🏃", CategoryID: "health"}}
	records := []models.CompletionRecord{{TrackerID: "run", Day: "2024-01-03"}}

	result := newValidator().Validate(trackers, categories, records)
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %v", result.Conflicts)
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report %q", result.FormatReport())
	}
}

func TestValidate_DuplicateCategories(t *testing.T) {
	categories := []models.Category{
		{ID: "1", Title: "Health"},
		{ID: "2", Title: "Art"},
		{ID: "3", Title: "health "},
	}
	result := newValidator().Validate(nil, categories, nil)

	dups := conflictsOfType(result, ConflictDuplicateCategory)
	if len(dups) != 1 {
		t.Fatalf("expected 1 duplicate conflict, got %d", len(dups))
	}
	if len(dups[0].IDs) != 2 || dups[0].IDs[0] != "1" || dups[0].IDs[1] != "3" {
		t.Errorf("duplicate ids = %v", dups[0].IDs)
	}
	if dups[0].Fixable() {
		t.Error("duplicate categories need a manual rename")
	}
}

func TestValidate_Trackers(t *testing.T) {
	categories := []models.Category{{ID: "health", Title: "Health"}}
	trackers := []models.Tracker{
		{ID: "a", Title: "Running", Emoji: "🏃", CategoryID: "gone"},
		{ID: "b", Title: strings.Repeat("x", 39), Emoji: "🏃", CategoryID: "health"},
		{ID: "c", Title: "Swimming", Emoji: "🏊🏊", CategoryID: "health"},
		{ID: "d", Title: "Reading", CategoryID: ""},
	}
	result := newValidator().Validate(trackers, categories, nil)

	tests := []struct {
		typ ConflictType
		id  string
	}{
		{ConflictOrphanCategory, "a"},
		{ConflictTitleTooLong, "b"},
		{ConflictInvalidEmoji, "c"},
	}
	for _, tt := range tests {
		found := conflictsOfType(result, tt.typ)
		if len(found) != 1 || found[0].IDs[0] != tt.id {
			t.Errorf("%s conflicts = %+v, want one for %s", tt.typ, found, tt.id)
		}
	}
	if len(result.Conflicts) != 3 {
		t.Errorf("expected 3 conflicts, got %d: %v", len(result.Conflicts), result.Conflicts)
	}
}

func TestValidate_Records(t *testing.T) {
	trackers := []models.Tracker{{ID: "run", Title: "Running"}}
	records := []models.CompletionRecord{
		{TrackerID: "run", Day: "2024-01-03"},
		{TrackerID: "run", Day: "2024-01-04"},
		{TrackerID: "run", Day: "03/01/2024"},
		{TrackerID: "ghost", Day: "2024-01-01"},
		{TrackerID: "ghost", Day: "2024-01-02"},
	}
	result := newValidator().Validate(trackers, nil, records)

	orphans := conflictsOfType(result, ConflictOrphanRecord)
	if len(orphans) != 1 || len(orphans[0].Records) != 2 {
		t.Errorf("orphan conflicts = %+v", orphans)
	}
	if bad := conflictsOfType(result, ConflictInvalidDay); len(bad) != 1 || bad[0].Records[0].Day != "03/01/2024" {
		t.Errorf("invalid day conflicts = %+v", bad)
	}
	if future := conflictsOfType(result, ConflictFutureRecord); len(future) != 1 || future[0].Records[0].Day != "2024-01-04" {
		t.Errorf("future conflicts = %+v", future)
	}
	if !strings.Contains(result.FormatReport(), "in the future") {
		t.Errorf("report missing future record:\n%s", result.FormatReport())
	}
}

func TestAutoFix(t *testing.T) {
	conflicts := []Conflict{
		{Type: ConflictDuplicateCategory, IDs: []string{"1", "2"}},
		{Type: ConflictOrphanRecord, Records: []models.CompletionRecord{
			{TrackerID: "ghost", Day: "2024-01-01"},
			{TrackerID: "ghost", Day: "2024-01-02"},
		}},
		{Type: ConflictFutureRecord, Records: []models.CompletionRecord{{TrackerID: "run", Day: "2024-01-04"}}},
	}

	var deleted []string
	deleteRecord := func(trackerID, day string) error {
		if day == "2024-01-02" {
			return errors.New("locked")
		}
		deleted = append(deleted, trackerID+"/"+day)
		return nil
	}

	actions := AutoFix(conflicts, deleteRecord)
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if len(deleted) != 2 || deleted[0] != "ghost/2024-01-01" || deleted[1] != "run/2024-01-04" {
		t.Errorf("deleted = %v", deleted)
	}
	if !strings.Contains(actions[0].Action, "failed to remove: [2024-01-02]") {
		t.Errorf("failure not reported: %q", actions[0].Action)
	}
	if actions[1].SourceConflict.Type != ConflictFutureRecord {
		t.Errorf("action source = %s", actions[1].SourceConflict.Type)
	}
}

func TestAutoFix_NoFixableConflicts(t *testing.T) {
	actions := AutoFix([]Conflict{{Type: ConflictTitleTooLong}}, func(string, string) error {
		t.Fatal("nothing should be deleted")
		return nil
	})
	if len(actions) != 0 {
		t.Errorf("expected no actions, got %v", actions)
	}
}
