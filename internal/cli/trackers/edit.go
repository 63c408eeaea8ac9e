package trackers

import (
	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

type EditCmd struct {
	Ref         string  `arg:"" help:"Tracker id or title."`
	Title       *string `short:"t" help:"New title."`
	Emoji       *string `short:"e" help:"New emoji."`
	Color       *string `short:"c" help:"Hex color or palette index (1-18)."`
	Category    *string `short:"C" help:"Move to another category (id or title)."`
	Days        *string `short:"w" help:"New weekdays. An empty value turns the habit into an event."`
	Interactive bool    `short:"i" help:"Edit the tracker with an interactive form."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	current, err := cli.ResolveTracker(vm, c.Ref)
	if err != nil {
		return err
	}
	form := viewmodel.FormFromTracker(current)

	if c.Title != nil {
		form.Title = *c.Title
	}
	if c.Emoji != nil {
		form.Emoji = *c.Emoji
	}
	if c.Color != nil {
		color, err := parseColor(*c.Color)
		if err != nil {
			return err
		}
		form.Color = color
	}
	if c.Category != nil {
		cat, err := resolveCategory(ctx, *c.Category)
		if err != nil {
			return err
		}
		form.CategoryID = cat.ID
	}
	if c.Days != nil {
		sched, err := models.ParseSchedule(*c.Days)
		if err != nil {
			return err
		}
		form.Schedule = sched
		form.Kind = models.TrackerKindHabit
		if sched.IsEvent() {
			form.Kind = models.TrackerKindEvent
		}
	}

	if c.Interactive {
		cats, err := ctx.Categories()
		if err != nil {
			return err
		}
		if err := runForm(form, cats.List()); err != nil {
			return err
		}
	}

	updated, err := form.Build(nil, ctx.Today())
	if err != nil {
		return err
	}
	if err := vm.SaveTracker(updated); err != nil {
		return err
	}
	ctx.Println(ctx.Render().Success("Updated " + updated.Title))
	return nil
}
