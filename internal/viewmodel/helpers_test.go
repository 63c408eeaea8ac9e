package viewmodel

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

// Wednesday, 2024-01-03.
var testNow = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

func testOptions() []Option {
	return []Option{
		WithClock(func() time.Time { return testNow }),
		WithLocation(time.UTC),
	}
}

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustAddCategory(t *testing.T, p storage.Provider, id, title string) {
	t.Helper()
	if err := p.AddCategory(models.Category{ID: id, Title: title, CreatedAt: testNow}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
}

func mustAddTracker(t *testing.T, p storage.Provider, tr models.Tracker) {
	t.Helper()
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = testNow
	}
	if err := p.AddTracker(tr); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}
}

var errStoreDown = errors.New("disk on fire")

// failingStore rejects completion writes.
type failingStore struct {
	storage.Provider
}

func (f failingStore) AddCompletionRecord(models.CompletionRecord) error {
	return apperrors.Persistence("add completion record", errStoreDown)
}

func (f failingStore) DeleteCompletionRecord(string, string) error {
	return apperrors.Persistence("delete completion record", errStoreDown)
}
