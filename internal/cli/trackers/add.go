package trackers

import (
	"github.com/google/uuid"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

type AddCmd struct {
	Title       string `arg:"" optional:"" help:"Tracker title."`
	Emoji       string `short:"e" help:"Emoji shown next to the title." default:"✨"`
	Color       string `short:"c" help:"Hex color or palette index (1-18)."`
	Category    string `short:"C" help:"Category id or title. Defaults to the selected category."`
	Days        string `short:"w" help:"Comma-separated weekdays, or daily, weekdays, weekends." default:"daily"`
	Event       bool   `help:"Create a one-off event instead of a habit."`
	Pinned      bool   `short:"p" help:"Pin the tracker."`
	Interactive bool   `short:"i" help:"Fill in the tracker with an interactive form."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	form := viewmodel.NewTrackerForm()
	if err := c.apply(ctx, form); err != nil {
		return err
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

	tracker, err := form.Build(uuid.NewString, ctx.Today())
	if err != nil {
		return err
	}

	vm, err := ctx.Trackers()
	if err != nil {
		return err
	}
	defer vm.Close()

	if err := vm.SaveTracker(tracker); err != nil {
		return err
	}
	ctx.Println(ctx.Render().Success("Added " + string(tracker.Kind()) + ": " + tracker.Title))
	return nil
}

func (c *AddCmd) apply(ctx *cli.Context, form *viewmodel.TrackerForm) error {
	form.Title = c.Title
	form.Emoji = c.Emoji
	form.Pinned = c.Pinned

	if c.Color != "" {
		color, err := parseColor(c.Color)
		if err != nil {
			return err
		}
		form.Color = color
	}
	if c.Category != "" {
		cat, err := resolveCategory(ctx, c.Category)
		if err != nil {
			return err
		}
		form.CategoryID = cat.ID
	} else {
		cats, err := ctx.Categories()
		if err != nil {
			return err
		}
		if cat, ok := cats.Selected(); ok {
			form.CategoryID = cat.ID
		}
	}
	if c.Event {
		form.Kind = models.TrackerKindEvent
		return nil
	}
	sched, err := models.ParseSchedule(c.Days)
	if err != nil {
		return err
	}
	form.Schedule = sched
	return nil
}
