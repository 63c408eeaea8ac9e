package system

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/validation"
)

// ValidateCmd reports inconsistent data and optionally repairs it.
type ValidateCmd struct {
	Fix bool `help:"Delete completion records that cannot be valid."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}

	ctx.Println(result.FormatReport())
	if !result.HasConflicts() {
		return nil
	}

	if !cmd.Fix {
		fixable := 0
		for _, c := range result.Conflicts {
			if c.Fixable() {
				fixable++
			}
		}
		if fixable > 0 {
			ctx.Printf("%d conflict(s) can be repaired with --fix.\n", fixable)
		}
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}

	ctx.PerformAutomaticBackup()
	actions := validation.AutoFix(result.Conflicts, ctx.Store.DeleteCompletionRecord)
	r := ctx.Render()
	for _, a := range actions {
		ctx.Println(r.Success(a.Action))
	}

	remaining, err := validateStore(ctx)
	if err != nil {
		return err
	}
	if remaining.HasConflicts() {
		ctx.Println()
		ctx.Println(remaining.FormatReport())
		return fmt.Errorf("%d conflict(s) need manual attention", len(remaining.Conflicts))
	}
	return nil
}

func validateStore(ctx *cli.Context) (validation.ValidationResult, error) {
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get trackers: %w", err)
	}
	categories, err := ctx.Store.GetCategories()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get categories: %w", err)
	}
	records, err := ctx.Store.GetCompletionRecords()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to get completion records: %w", err)
	}

	return validation.New(ctx.Now, ctx.Location).Validate(trackers, categories, records), nil
}
