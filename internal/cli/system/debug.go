package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/models"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpTracker  *DebugDumpTrackerCmd  `cmd:"" help:"Dump tracker data as JSON."`
	DumpCategory *DebugDumpCategoryCmd `cmd:"" help:"Dump category data as JSON."`
	DumpRecords  *DebugDumpRecordsCmd  `cmd:"" help:"Dump completion records as JSON."`
	DumpConfig   *DebugDumpConfigCmd   `cmd:"" help:"Dump the effective configuration as JSON."`
}

func printJSON(ctx *cli.Context, what string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, "output", map[string]string{
		"path": keyring.MaskPassword(ctx.Store.GetConfigPath()),
	})
}

type DebugDumpTrackerCmd struct {
	Ref string `arg:"" help:"ID or title of the tracker to dump."`
}

func (cmd *DebugDumpTrackerCmd) Run(ctx *cli.Context) error {
	tracker, err := ctx.Store.GetTracker(cmd.Ref)
	if errors.Is(err, apperrors.ErrNotFound) {
		vm, vmErr := ctx.Trackers()
		if vmErr != nil {
			return vmErr
		}
		defer vm.Close()
		tracker, err = cli.ResolveTracker(vm, cmd.Ref)
	}
	if err != nil {
		return fmt.Errorf("failed to get tracker: %w", err)
	}
	return printJSON(ctx, "tracker", tracker)
}

type DebugDumpCategoryCmd struct {
	Ref string `arg:"" help:"ID or title of the category to dump."`
}

func (cmd *DebugDumpCategoryCmd) Run(ctx *cli.Context) error {
	category, err := ctx.Store.GetCategory(cmd.Ref)
	if errors.Is(err, apperrors.ErrNotFound) {
		category, err = ctx.Store.GetCategoryByTitle(cmd.Ref)
	}
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	return printJSON(ctx, "category", category)
}

type DebugDumpRecordsCmd struct {
	Tracker string `arg:"" optional:"" help:"Only dump records of this tracker ID."`
	Date    string `short:"d" help:"Only dump records of this day (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpRecordsCmd) Run(ctx *cli.Context) error {
	var (
		records []models.CompletionRecord
		err     error
	)
	if cmd.Tracker != "" {
		if _, err := ctx.Store.GetTracker(cmd.Tracker); err != nil {
			return fmt.Errorf("failed to get tracker: %w", err)
		}
		records, err = ctx.Store.GetCompletionRecordsForTracker(cmd.Tracker)
	} else {
		records, err = ctx.Store.GetCompletionRecords()
	}
	if err != nil {
		return fmt.Errorf("failed to get completion records: %w", err)
	}

	if cmd.Date != "" {
		date, err := ctx.ResolveDate(cmd.Date)
		if err != nil {
			return err
		}
		day := models.DayOf(date)
		filtered := make([]models.CompletionRecord, 0, len(records))
		for _, r := range records {
			if r.Day == day {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}
	if records == nil {
		records = []models.CompletionRecord{}
	}
	return printJSON(ctx, "records", records)
}

type DebugDumpConfigCmd struct{}

func (cmd *DebugDumpConfigCmd) Run(ctx *cli.Context) error {
	if ctx.Config == nil {
		return errors.New("no configuration loaded")
	}
	cfg := *ctx.Config
	cfg.Database = keyring.MaskPassword(cfg.Database)
	return printJSON(ctx, "config", cfg)
}
