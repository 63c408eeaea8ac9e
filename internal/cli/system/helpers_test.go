package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/config"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

// Wednesday, 2024-01-03.
var testNow = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

// newTestContext returns a context over an uninitialized SQLite database in
// a temporary directory.
func newTestContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	store, err := cli.OpenStore(keyring.Connection{Value: dbPath, Source: keyring.SourceFlag})
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	return &cli.Context{
		Store:      store,
		Config:     config.Default(),
		ConfigPath: filepath.Join(dir, "config.yaml"),
		Location:   time.UTC,
		Now:        func() time.Time { return testNow },
		Out:        &out,
		AssumeYes:  true,
	}, dbPath, &out
}

func newInitializedContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	ctx, dbPath, out := newTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return ctx, dbPath, out
}

// seed adds one category, one tracker and two completion records.
func seed(t *testing.T, p storage.Provider) models.Tracker {
	t.Helper()
	if err := p.AddCategory(models.Category{ID: "health", Title: "Health", CreatedAt: testNow}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	tr := models.Tracker{
		ID:         "run",
		Title:      "Run",
		Emoji:      "🏃",
		Color:      models.MustParseColor(models.Palette[0]),
		Schedule:   models.EveryDay(),
		CategoryID: "health",
		CreatedAt:  testNow,
	}
	if err := p.AddTracker(tr); err != nil {
		t.Fatalf("AddTracker failed: %v", err)
	}
	for _, day := range []string{"2024-01-02", "2024-01-03"} {
		if err := p.AddCompletionRecord(models.CompletionRecord{ID: "rec-" + day, TrackerID: tr.ID, Day: day, CreatedAt: testNow}); err != nil {
			t.Fatalf("AddCompletionRecord failed: %v", err)
		}
	}
	return tr
}
