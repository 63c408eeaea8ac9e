package system

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tracker/internal/cli"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/keyring"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := newTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized tracker storage at: "+dbPath) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	seed(t, ctx.Store)
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil || len(trackers) != 1 {
		t.Errorf("second init should keep data, got %d trackers (%v)", len(trackers), err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, _ := newTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	seed(t, ctx.Store)

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}

	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		t.Fatalf("GetAllTrackers failed: %v", err)
	}
	if len(trackers) != 0 {
		t.Errorf("expected an empty database after force, got %d trackers", len(trackers))
	}
	if _, err := ctx.Store.GetCategory("health"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("categories should be wiped, got %v", err)
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, _ := newTestContext(t)

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "source.db")
	source, err := cli.OpenStore(keyring.Connection{Value: sourcePath, Source: keyring.SourceFlag})
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	if err := source.Init(); err != nil {
		t.Fatalf("source Init failed: %v", err)
	}
	tr := seed(t, source)
	if err := source.Close(); err != nil {
		t.Fatalf("source Close failed: %v", err)
	}

	ctx, _, out := newTestContext(t)
	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetTracker(tr.ID)
	if err != nil {
		t.Fatalf("GetTracker failed: %v", err)
	}
	if got.Title != tr.Title || got.CategoryID != tr.CategoryID || !got.Schedule.Equal(tr.Schedule) {
		t.Errorf("copied tracker = %+v, want %+v", got, tr)
	}
	records, err := ctx.Store.GetCompletionRecords()
	if err != nil {
		t.Fatalf("GetCompletionRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 copied records, got %d", len(records))
	}
	for _, want := range []string{"Copied 1 category", "Copied 1 tracker", "Copied 2 completion records"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, _ := newTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "source and destination are the same") {
		t.Errorf("expected same-source error, got %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database must survive a rejected force: %v", err)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _, out := newInitializedContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("MigrateCmd.Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
