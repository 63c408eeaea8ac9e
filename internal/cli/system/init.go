package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/render"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized tracker storage at: %s\n", keyring.MaskPassword(ctx.Store.GetConfigPath()))

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", keyring.MaskPassword(c.Source))
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

// reset deletes an existing SQLite database. PostgreSQL databases are left
// alone; their schema is managed by migrations.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := storage.Unwrap(ctx.Store).(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Println(ctx.Render().Danger("Deleted existing database at: " + dbPath))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData copies categories, trackers and completion records, in that
// order so every reference resolves on insert.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(keyring.Connection{Value: c.Source, Source: keyring.SourceFlag})
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	ctx.Println("  Copying categories...")
	categories, err := source.GetCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories from source: %w", err)
	}
	for _, cat := range categories {
		if err := ctx.Store.AddCategory(cat); err != nil {
			return fmt.Errorf("failed to add category %s: %w", cat.ID, err)
		}
	}
	ctx.Printf("    Copied %s\n", render.Count(len(categories), "category"))

	ctx.Println("  Copying trackers...")
	trackers, err := source.GetAllTrackers()
	if err != nil {
		return fmt.Errorf("failed to get trackers from source: %w", err)
	}
	for _, t := range trackers {
		if err := ctx.Store.AddTracker(t); err != nil {
			return fmt.Errorf("failed to add tracker %s: %w", t.ID, err)
		}
	}
	ctx.Printf("    Copied %s\n", render.Count(len(trackers), "tracker"))

	ctx.Println("  Copying completion records...")
	records, err := source.GetCompletionRecords()
	if err != nil {
		return fmt.Errorf("failed to get completion records from source: %w", err)
	}
	for _, r := range records {
		if err := ctx.Store.AddCompletionRecord(r); err != nil {
			return fmt.Errorf("failed to add record %s/%s: %w", r.TrackerID, r.Day, err)
		}
	}
	ctx.Printf("    Copied %s\n", render.Count(len(records), "completion record"))
	return nil
}
