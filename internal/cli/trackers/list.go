package trackers

import (
	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/render"
	"github.com/julianstephens/tracker/internal/utils"
)

// ListCmd shows the trackers visible on a day, grouped by category.
type ListCmd struct {
	Date   string `short:"d" help:"Day to show: today, yesterday, tomorrow or YYYY-MM-DD." default:"today"`
	Search string `short:"s" help:"Only show trackers whose title contains this text."`
	Filter string `short:"f" help:"Filter: all, today, completed or incomplete." default:"all" enum:"all,today,completed,incomplete"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	filter, err := models.ParseFilter(c.Filter)
	if err != nil {
		return err
	}

	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	vm.SetDate(date)
	vm.SetSearch(c.Search)
	vm.SetFilter(filter)

	r := ctx.Render()
	selected := vm.Date()
	today := ctx.Today()
	ctx.Println(r.DayHeader(selected, today))
	if vm.IsFilterActive() {
		ctx.Printf("Filter: %s\n", vm.Filter().Title())
	}
	ctx.Println()

	groups := vm.Visible()
	if len(groups) == 0 {
		ctx.Println(r.EmptyState(vm.HasTrackersOnSelectedDate()))
		return nil
	}

	future := utils.IsAfterDay(selected, today, selected.Location())
	status := func(t models.Tracker) render.Status {
		return render.Status{
			Completed: vm.IsCompleted(t.ID, selected),
			Future:    future,
			Days:      vm.TotalCompletions(t.ID),
		}
	}
	ctx.Printf("%s", r.Groups(groups, status))
	return nil
}
