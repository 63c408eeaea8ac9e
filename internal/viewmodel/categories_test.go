package viewmodel

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

func newCategories(t *testing.T) (*Categories, func() int) {
	t.Helper()
	store := setupStore(t)
	c := NewCategories(store, testOptions()...)
	n := 0
	c.newID = func() string {
		n++
		return fmt.Sprintf("cat-%d", n)
	}
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c, func() int {
		cats, err := store.GetCategories()
		if err != nil {
			t.Fatalf("GetCategories failed: %v", err)
		}
		return len(cats)
	}
}

func TestCategories_Add(t *testing.T) {
	tests := []struct {
		name    string
		titles  []string
		wantErr error
	}{
		{"single", []string{"Health"}, nil},
		{"trimmed", []string{"  Health  "}, nil},
		{"blank", []string{"   "}, ErrEmptyTitle},
		{"duplicate", []string{"Health", "Health"}, apperrors.ErrDuplicateName},
		{"duplicate ignoring case", []string{"Health", "HEALTH"}, apperrors.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newCategories(t)
			var err error
			for _, title := range tt.titles {
				_, err = c.Add(title)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategories_AddPersists(t *testing.T) {
	c, stored := newCategories(t)
	cat, err := c.Add("  Reading ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if cat.Title != "Reading" || cat.ID != "cat-1" || !cat.CreatedAt.Equal(testNow) {
		t.Errorf("unexpected category %+v", cat)
	}
	if stored() != 1 {
		t.Error("category not persisted")
	}
}

func TestCategories_Rename(t *testing.T) {
	c, _ := newCategories(t)
	health, _ := c.Add("Health")
	art, _ := c.Add("Art")

	if _, err := c.Rename(art.ID, "Health"); !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Errorf("exact duplicate: got %v", err)
	}
	// Only an exact match is a duplicate on rename.
	if _, err := c.Rename(art.ID, "health"); err != nil {
		t.Errorf("case-only difference should be allowed: %v", err)
	}
	if _, err := c.Rename(health.ID, "Health"); err != nil {
		t.Errorf("renaming to its own title should succeed: %v", err)
	}
	if _, err := c.Rename("missing", "Other"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing category: got %v", err)
	}

	got, ok := c.Find(art.ID)
	if !ok || got.Title != "health" {
		t.Errorf("Find after rename = %+v, %v", got, ok)
	}
}

func TestCategories_ListAndFind(t *testing.T) {
	c, _ := newCategories(t)
	for _, title := range []string{"work", "Art", "health"} {
		if _, err := c.Add(title); err != nil {
			t.Fatalf("Add(%q) failed: %v", title, err)
		}
	}

	list := c.List()
	want := []string{"Art", "health", "work"}
	for i, cat := range list {
		if cat.Title != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, cat.Title, want[i])
		}
	}

	if cat, ok := c.Find("HEALTH"); !ok || cat.Title != "health" {
		t.Errorf("Find ignoring case = %+v, %v", cat, ok)
	}
	if _, ok := c.Find("nothing"); ok {
		t.Error("Find should miss unknown titles")
	}
}

func TestCategories_DeleteAndSelect(t *testing.T) {
	c, stored := newCategories(t)
	cat, _ := c.Add("Health")

	if err := c.Select(cat.ID); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sel, ok := c.Selected(); !ok || sel.ID != cat.ID {
		t.Errorf("Selected() = %+v, %v", sel, ok)
	}

	mustAddTracker(t, c.store, models.Tracker{ID: "run", Title: "Running", CategoryID: cat.ID})
	if err := c.Delete(cat.ID); !errors.Is(err, apperrors.ErrCategoryNotEmpty) {
		t.Fatalf("delete non-empty: got %v", err)
	}
	if err := c.store.DeleteTracker("run"); err != nil {
		t.Fatalf("DeleteTracker failed: %v", err)
	}
	if err := c.Delete(cat.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection should clear when the category is deleted")
	}
	if stored() != 0 {
		t.Error("category not removed from store")
	}
	if err := c.Select(cat.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Select(deleted) = %v", err)
	}
}
