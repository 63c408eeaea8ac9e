package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
)

type DeleteCmd struct {
	Ref string `arg:"" help:"Tracker id or title."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	tracker, err := cli.ResolveTracker(vm, c.Ref)
	if err != nil {
		return err
	}

	n := vm.TotalCompletions(tracker.ID)
	ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its %d completion record(s)?", tracker.Title, n))
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := vm.DeleteTracker(tracker.ID); err != nil {
		return err
	}
	ctx.Println(ctx.Render().Success("Deleted " + tracker.Title))
	return nil
}
