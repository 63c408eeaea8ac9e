package system

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

func sqliteOf(t *testing.T, p storage.Provider) *sqlite.Store {
	t.Helper()
	s, ok := storage.Unwrap(p).(*sqlite.Store)
	if !ok {
		t.Fatalf("expected *sqlite.Store, got %T", storage.Unwrap(p))
	}
	return s
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _, out := newInitializedContext(t)
	seed(t, ctx.Store)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "All diagnostics passed!") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestDoctorCmd_MissingBackups(t *testing.T) {
	ctx, _, out := newInitializedContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command should not fail on missing backups: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
		t.Errorf("expected backup warning:\n%s", out.String())
	}
}

func TestDoctorCmd_UninitializedDB(t *testing.T) {
	ctx, _, out := newTestContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail when the database does not exist")
	}
	if !strings.Contains(out.String(), "⊘ Schema version: SKIPPED") {
		t.Errorf("schema check should be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, _, _ := newInitializedContext(t)
	db := sqliteOf(t, ctx.Store).GetDB()

	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, _, out := newInitializedContext(t)
	if _, err := ctx.BackupManager().Create(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestDoctorCmd_FutureRecord(t *testing.T) {
	ctx, _, out := newInitializedContext(t)
	tr := seed(t, ctx.Store)
	if err := ctx.Store.AddCompletionRecord(models.CompletionRecord{ID: "late", TrackerID: tr.ID, Day: "2024-02-01", CreatedAt: testNow}); err != nil {
		t.Fatalf("AddCompletionRecord failed: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should flag a completion record in the future")
	}
	if !strings.Contains(out.String(), "❌ Data validation: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, _, _ := newInitializedContext(t)
	db := sqliteOf(t, ctx.Store).GetDB()

	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (0)"); err != nil {
		t.Fatalf("failed to insert downgraded schema version: %v", err)
	}

	if err := checkMigrationsComplete(ctx); err == nil {
		t.Error("checkMigrationsComplete should fail with incomplete migrations")
	}
}

func TestCheckClockTimezone(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	if err := checkClockTimezone(ctx); err != nil {
		t.Errorf("clock/timezone check failed: %v", err)
	}

	ctx.Now = func() time.Time { return time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC) }
	if err := checkClockTimezone(ctx); err == nil {
		t.Error("a 1999 clock should be reported")
	}
}
