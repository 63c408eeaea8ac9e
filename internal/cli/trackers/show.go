package trackers

import "github.com/julianstephens/tracker/internal/cli"

// ShowCmd prints one tracker and its completion history.
type ShowCmd struct {
	Ref string `arg:"" help:"Tracker id or title."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	tracker, err := cli.ResolveTracker(vm, c.Ref)
	if err != nil {
		return err
	}

	category, ok := vm.CategoryTitle(tracker.CategoryID)
	if !ok {
		category = "(none)"
	}
	ctx.Printf("%s", ctx.Render().TrackerDetail(tracker, category, vm.Records(tracker.ID), ctx.Today()))
	return nil
}
