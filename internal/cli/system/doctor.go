package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// needsDB checks are skipped when the database cannot be reached.
	needsDB bool
	// warnOnly checks never fail the run.
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Record integrity", run: checkRecordIntegrity, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := storage.Unwrap(ctx.Store).(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	reporter, ok := storage.Unwrap(ctx.Store).(storage.SchemaReporter)
	if !ok {
		return nil
	}
	st, err := reporter.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.TooNew() {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	reporter, ok := storage.Unwrap(ctx.Store).(storage.SchemaReporter)
	if !ok {
		return nil
	}
	st, err := reporter.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current < st.Latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", st.Current, st.Latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return fmt.Errorf("backups are only managed for SQLite databases")
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

// checkRecordIntegrity looks below the provider for rows the schema should
// have prevented, e.g. after a hand-edited import.
func checkRecordIntegrity(ctx *cli.Context) error {
	s, ok := storage.Unwrap(ctx.Store).(*sqlite.Store)
	if !ok {
		return nil
	}
	db := s.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var orphaned int
	if err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completion_records r
		LEFT JOIN trackers t ON r.tracker_id = t.id
		WHERE t.id IS NULL
	`).Scan(&orphaned); err != nil {
		return fmt.Errorf("failed to check orphaned records: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d completion records referencing non-existent trackers", orphaned)
	}

	var invalid int
	if err := db.QueryRow(`
		SELECT COUNT(*)
		FROM completion_records
		WHERE day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
	`).Scan(&invalid); err != nil {
		return fmt.Errorf("failed to check record dates: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d completion records with invalid date format", invalid)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if ctx.Now != nil {
		now = ctx.Now()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil {
		if _, err := ctx.Config.Location(); err != nil {
			return fmt.Errorf("configured timezone %q cannot be loaded: %w", ctx.Config.Timezone, err)
		}
	}
	return nil
}
