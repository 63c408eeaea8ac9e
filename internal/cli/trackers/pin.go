package trackers

import "github.com/julianstephens/tracker/internal/cli"

// PinCmd toggles whether a tracker is shown in the pinned group.
type PinCmd struct {
	Ref string `arg:"" help:"Tracker id or title."`
}

func (c *PinCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	tracker, err := cli.ResolveTracker(vm, c.Ref)
	if err != nil {
		return err
	}
	updated, err := vm.TogglePin(tracker.ID)
	if err != nil {
		return err
	}

	verb := "Unpinned "
	if updated.IsPinned {
		verb = "Pinned "
	}
	ctx.Println(ctx.Render().Success(verb + updated.Title))
	return nil
}
