package trackers

import (
	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

// StatsCmd prints streaks, perfect days and per-tracker totals.
type StatsCmd struct {
	Trackers bool `short:"t" help:"Include the per-tracker breakdown." default:"true" negatable:""`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats := viewmodel.NewStatistics(ctx.Store, ctx.ViewOptions()...)
	if err := stats.Load(); err != nil {
		return err
	}

	r := ctx.Render()
	summary := stats.Summary()
	ctx.Println(r.DayHeader(ctx.Today(), ctx.Today()))
	ctx.Println()
	ctx.Printf("%s", r.Summary(summary))
	if summary.IsEmpty() {
		ctx.Println()
		return nil
	}

	if c.Trackers {
		ctx.Println()
		ctx.Printf("%s", r.TrackerStats(stats.PerTracker()))
	}
	return nil
}
