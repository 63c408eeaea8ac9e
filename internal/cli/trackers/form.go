package trackers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rivo/uniseg"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

// runForm lets the user edit form interactively. The form is updated in
// place only when the user completes it.
func runForm(form *viewmodel.TrackerForm, categories []models.Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("no categories yet; add one with 'tracker category add'")
	}

	title := form.Title
	emoji := form.Emoji
	color := form.Color.Hex()
	categoryID := form.CategoryID
	kind := form.Kind
	days := form.Schedule.Sorted()
	pinned := form.Pinned

	if categoryID == "" {
		categoryID = categories[0].ID
	}

	catOptions := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		catOptions = append(catOptions, huh.NewOption(c.Title, c.ID))
	}
	colorOptions := make([]huh.Option[string], 0, len(models.Palette)+1)
	for i, hex := range models.Palette {
		colorOptions = append(colorOptions, huh.NewOption(fmt.Sprintf("%2d  %s", i+1, hex), hex))
	}
	if !containsHex(models.Palette, color) {
		colorOptions = append(colorOptions, huh.NewOption("current  "+color, color))
	}
	dayOptions := make([]huh.Option[models.Weekday], 0, len(models.AllWeekdays))
	for _, d := range models.AllWeekdays {
		dayOptions = append(dayOptions, huh.NewOption(d.String(), d))
	}

	heading := "New tracker"
	if form.IsEditing() {
		heading = "Edit tracker"
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(heading),
			huh.NewInput().
				Title("Title").
				CharLimit(constants.MaxTitleLength).
				Value(&title).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("title cannot be empty")
					}
					if uniseg.GraphemeClusterCount(s) > constants.MaxTitleLength {
						return fmt.Errorf("title is limited to %d characters", constants.MaxTitleLength)
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Value(&emoji).
				Validate(func(s string) error {
					if uniseg.GraphemeClusterCount(s) != 1 {
						return fmt.Errorf("enter a single emoji")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&color),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOptions...).
				Value(&categoryID),
			huh.NewSelect[models.TrackerKind]().
				Title("Kind").
				Options(
					huh.NewOption("Habit", models.TrackerKindHabit),
					huh.NewOption("Event", models.TrackerKindEvent),
				).
				Value(&kind),
		),
		huh.NewGroup(
			huh.NewMultiSelect[models.Weekday]().
				Title("Days").
				Description("Days the habit is scheduled on").
				Options(dayOptions...).
				Value(&days).
				Validate(func(d []models.Weekday) error {
					if len(d) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return kind != models.TrackerKindHabit }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Pinned").
				Value(&pinned),
		),
	).WithTheme(huh.ThemeDracula())

	if err := f.Run(); err != nil {
		return err
	}

	c, err := models.ParseColor(color)
	if err != nil {
		return err
	}
	form.Title = title
	form.Emoji = emoji
	form.Color = c
	form.CategoryID = categoryID
	form.Kind = kind
	form.Schedule = models.NewSchedule(days...)
	form.Pinned = pinned
	return nil
}

func containsHex(palette []string, hex string) bool {
	for _, p := range palette {
		if strings.EqualFold(p, hex) {
			return true
		}
	}
	return false
}
