package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/ledger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/render"
)

// MarkCmd toggles a tracker's completion on a day.
type MarkCmd struct {
	Ref  string `arg:"" help:"Tracker id or title."`
	Date string `short:"d" help:"Day to toggle: today, yesterday or YYYY-MM-DD." default:"today"`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	tracker, err := cli.ResolveTracker(vm, c.Ref)
	if err != nil {
		return err
	}

	change, err := vm.ToggleCompletion(tracker.ID, date)
	if err != nil {
		return err
	}

	day := models.DayOf(date)
	r := ctx.Render()
	switch change {
	case ledger.ChangeAdded:
		ctx.Println(r.Success(fmt.Sprintf("Marked %q for %s (%s)", tracker.Title, day, render.DaysCount(vm.TotalCompletions(tracker.ID)))))
	case ledger.ChangeRemoved:
		ctx.Println(r.Success(fmt.Sprintf("Unmarked %q for %s", tracker.Title, day)))
	default:
		ctx.Println(r.Warning(fmt.Sprintf("%s is in the future; nothing changed", day)))
	}
	return nil
}
