package storage_test

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

func setupObserved(t *testing.T) *storage.Observed {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return storage.WithFeed(store)
}

func TestFeed_SubscriptionOrder(t *testing.T) {
	feed := &storage.Feed{}
	var calls []string

	feed.Subscribe(func(storage.Change) { calls = append(calls, "first") })
	unsubscribe := feed.Subscribe(func(storage.Change) { calls = append(calls, "second") })
	feed.Subscribe(func(storage.Change) { calls = append(calls, "third") })

	feed.Publish(storage.Change{Entity: storage.EntityTracker, Op: storage.OpCreate, ID: "t1"})
	if len(calls) != 3 || calls[0] != "first" || calls[1] != "second" || calls[2] != "third" {
		t.Fatalf("unexpected call order %v", calls)
	}

	calls = nil
	unsubscribe()
	unsubscribe()
	feed.Publish(storage.Change{})
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "third" {
		t.Errorf("after unsubscribe got %v", calls)
	}
}

func TestObserved_PublishesSuccessfulWrites(t *testing.T) {
	p := setupObserved(t)
	var changes []storage.Change
	p.Feed().Subscribe(func(c storage.Change) { changes = append(changes, c) })

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := p.AddCategory(models.Category{ID: "c1", Title: "Health", CreatedAt: now}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if err := p.AddTracker(models.Tracker{ID: "t1", Title: "Run", CategoryID: "c1", CreatedAt: now}); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}
	if err := p.AddCompletionRecord(models.CompletionRecord{ID: "r1", TrackerID: "t1", Day: "2024-01-01", CreatedAt: now}); err != nil {
		t.Fatalf("AddCompletionRecord failed: %v", err)
	}

	err := p.AddCategory(models.Category{ID: "c2", Title: "Health", CreatedAt: now})
	if !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	want := []storage.Change{
		{Entity: storage.EntityCategory, Op: storage.OpCreate, ID: "c1"},
		{Entity: storage.EntityTracker, Op: storage.OpCreate, ID: "t1"},
		{Entity: storage.EntityRecord, Op: storage.OpCreate, ID: "r1"},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d: %+v", len(changes), len(want), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}
}

func TestUnwrap(t *testing.T) {
	p := setupObserved(t)
	inner := storage.Unwrap(storage.WithFeed(p))
	if _, ok := inner.(*sqlite.Store); !ok {
		t.Errorf("Unwrap returned %T, want *sqlite.Store", inner)
	}
	if _, ok := inner.(storage.SchemaReporter); !ok {
		t.Error("sqlite store should report schema status")
	}
}
