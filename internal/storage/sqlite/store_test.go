package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var created = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func seedCategory(t *testing.T, s *Store, id, title string) models.Category {
	t.Helper()
	c := models.Category{ID: id, Title: title, CreatedAt: created}
	if err := s.AddCategory(c); err != nil {
		t.Fatalf("AddCategory(%s) failed: %v", title, err)
	}
	return c
}

func seedTracker(t *testing.T, s *Store, id, categoryID string) models.Tracker {
	t.Helper()
	tr := models.Tracker{
		ID:         id,
		Title:      "Tracker " + id,
		Emoji:      "🏃",
		Color:      models.MustParseColor("#33cf69"),
		Schedule:   models.NewSchedule(models.Monday, models.Thursday),
		CategoryID: categoryID,
		CreatedAt:  created,
	}
	if err := s.AddTracker(tr); err != nil {
		t.Fatalf("AddTracker(%s) failed: %v", id, err)
	}
	return tr
}

func TestLoad_RequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestLoad_AfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	seedCategory(t, first, "c1", "Health")
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	if title, ok := second.CategoryTitle("c1"); !ok || title != "Health" {
		t.Errorf("CategoryTitle() = %q, %v", title, ok)
	}

	st, err := second.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if !st.UpToDate() || st.Latest < 1 {
		t.Errorf("unexpected schema status %+v", st)
	}
}

func TestTrackerRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	want := seedTracker(t, s, "t1", "c1")

	got, err := s.GetTracker("t1")
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.Title != want.Title || got.Emoji != want.Emoji || got.CategoryID != "c1" {
		t.Errorf("GetTracker() = %+v, want %+v", got, want)
	}
	if got.Color != want.Color {
		t.Errorf("color = %v, want %v", got.Color, want.Color)
	}
	if !got.Schedule.Equal(want.Schedule) {
		t.Errorf("schedule = %v, want %v", got.Schedule, want.Schedule)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestTrackerUncategorizedEvent(t *testing.T) {
	s := setupTestStore(t)
	tr := models.Tracker{ID: "e1", Title: "Dentist", CreatedAt: created}
	if err := s.AddTracker(tr); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}

	got, err := s.GetTracker("e1")
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if !got.IsEvent() || got.CategoryID != "" || !got.Color.IsZero() {
		t.Errorf("unexpected tracker %+v", got)
	}
}

func TestUpdateTracker(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	tr := seedTracker(t, s, "t1", "c1")

	tr = tr.WithPinned(true)
	tr.Title = "Morning run"
	tr.Schedule = models.EveryDay()
	if err := s.UpdateTracker(tr); err != nil {
		t.Fatalf("UpdateTracker failed: %v", err)
	}

	got, _ := s.GetTracker("t1")
	if !got.IsPinned || got.Title != "Morning run" || len(got.Schedule) != 7 {
		t.Errorf("update not persisted: %+v", got)
	}

	missing := models.Tracker{ID: "nope", Title: "x"}
	if err := s.UpdateTracker(missing); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpdateTracker(missing) = %v, want ErrNotFound", err)
	}
}

func TestGetTracker_NotFound(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.GetTracker("nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetTracker() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTracker_CascadesRecords(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	seedTracker(t, s, "t1", "c1")
	seedTracker(t, s, "t2", "c1")

	for _, r := range []models.CompletionRecord{
		{ID: "r1", TrackerID: "t1", Day: "2024-01-01", CreatedAt: created},
		{ID: "r2", TrackerID: "t1", Day: "2024-01-02", CreatedAt: created},
		{ID: "r3", TrackerID: "t2", Day: "2024-01-01", CreatedAt: created},
	} {
		if err := s.AddCompletionRecord(r); err != nil {
			t.Fatalf("AddCompletionRecord failed: %v", err)
		}
	}

	if err := s.DeleteTracker("t1"); err != nil {
		t.Fatalf("DeleteTracker failed: %v", err)
	}

	records, err := s.GetCompletionRecords()
	if err != nil {
		t.Fatalf("GetCompletionRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].TrackerID != "t2" {
		t.Errorf("expected only t2's record to remain, got %+v", records)
	}

	if err := s.DeleteTracker("t1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second DeleteTracker = %v, want ErrNotFound", err)
	}
}

func TestCategories(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	seedCategory(t, s, "c2", "Work")

	all, err := s.GetCategories()
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetCategories() returned %d, want 2", len(all))
	}

	byTitle, err := s.GetCategoryByTitle("Work")
	if err != nil || byTitle.ID != "c2" {
		t.Errorf("GetCategoryByTitle() = %+v, %v", byTitle, err)
	}
	if _, err := s.GetCategory("missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetCategory(missing) = %v, want ErrNotFound", err)
	}
	if _, ok := s.CategoryTitle("missing"); ok {
		t.Error("CategoryTitle(missing) should miss")
	}
}

func TestCategoryDuplicateTitle(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	seedCategory(t, s, "c2", "Work")

	err := s.AddCategory(models.Category{ID: "c3", Title: "Health", CreatedAt: created})
	if !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Errorf("AddCategory(duplicate) = %v, want ErrDuplicateName", err)
	}

	err = s.UpdateCategory(models.Category{ID: "c2", Title: "Health"})
	if !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Errorf("UpdateCategory(duplicate) = %v, want ErrDuplicateName", err)
	}

	if err := s.UpdateCategory(models.Category{ID: "c2", Title: "Career"}); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if title, _ := s.CategoryTitle("c2"); title != "Career" {
		t.Errorf("title = %q, want Career", title)
	}
}

func TestDeleteCategory(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	seedCategory(t, s, "c2", "Empty")
	seedTracker(t, s, "t1", "c1")

	err := s.DeleteCategory("c1")
	if !errors.Is(err, apperrors.ErrCategoryNotEmpty) {
		t.Errorf("DeleteCategory(non-empty) = %v, want ErrCategoryNotEmpty", err)
	}
	if apperrors.IsPersistence(err) {
		t.Error("ErrCategoryNotEmpty should not be wrapped as a persistence error")
	}

	if err := s.DeleteCategory("c2"); err != nil {
		t.Errorf("DeleteCategory(empty) failed: %v", err)
	}
	if err := s.DeleteCategory("c2"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("DeleteCategory(missing) = %v, want ErrNotFound", err)
	}
}

func TestCompletionRecords(t *testing.T) {
	s := setupTestStore(t)
	seedCategory(t, s, "c1", "Health")
	seedTracker(t, s, "t1", "c1")

	r := models.CompletionRecord{ID: "r1", TrackerID: "t1", Day: "2024-01-01", CreatedAt: created}
	if err := s.AddCompletionRecord(r); err != nil {
		t.Fatalf("AddCompletionRecord failed: %v", err)
	}

	dup := models.CompletionRecord{ID: "r2", TrackerID: "t1", Day: "2024-01-01", CreatedAt: created}
	if err := s.AddCompletionRecord(dup); err != nil {
		t.Fatalf("duplicate AddCompletionRecord should be a no-op, got %v", err)
	}

	records, err := s.GetCompletionRecordsForTracker("t1")
	if err != nil {
		t.Fatalf("GetCompletionRecordsForTracker failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "r1" {
		t.Errorf("expected a single r1 record, got %+v", records)
	}

	if err := s.DeleteCompletionRecord("t1", "2024-01-01"); err != nil {
		t.Fatalf("DeleteCompletionRecord failed: %v", err)
	}
	if err := s.DeleteCompletionRecord("t1", "2024-01-01"); err != nil {
		t.Errorf("deleting a missing record should be a no-op, got %v", err)
	}
	records, _ = s.GetCompletionRecords()
	if len(records) != 0 {
		t.Errorf("expected no records, got %+v", records)
	}
}

func TestCompletionRecord_UnknownTracker(t *testing.T) {
	s := setupTestStore(t)
	err := s.AddCompletionRecord(models.CompletionRecord{ID: "r1", TrackerID: "ghost", Day: "2024-01-01", CreatedAt: created})
	if !apperrors.IsPersistence(err) {
		t.Errorf("expected a persistence error from the foreign key, got %v", err)
	}
}
