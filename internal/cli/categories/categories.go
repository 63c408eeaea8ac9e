// Package categories holds the category subcommands.
package categories

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

func find(vm *viewmodel.Categories, ref string) (models.Category, error) {
	cat, ok := vm.Find(ref)
	if !ok {
		return models.Category{}, apperrors.NotFound("category", ref)
	}
	return cat, nil
}

type AddCmd struct {
	Title  string `arg:"" help:"Category title."`
	Select bool   `short:"s" help:"Make it the default category for new trackers."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Categories()
	if err != nil {
		return err
	}
	cat, err := vm.Add(c.Title)
	if err != nil {
		return err
	}
	ctx.Println(ctx.Render().Success("Added category " + cat.Title))

	if c.Select {
		return selectCategory(ctx, cat)
	}
	return nil
}

// ListCmd prints every category with how many trackers it holds.
type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Categories()
	if err != nil {
		return err
	}
	trackers, err := ctx.Store.GetAllTrackers()
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, t := range trackers {
		counts[t.CategoryID]++
	}

	selected := ""
	if cat, ok := vm.Selected(); ok {
		selected = cat.ID
	}
	ctx.Printf("%s", ctx.Render().Categories(vm.List(), counts, selected))
	return nil
}

type RenameCmd struct {
	Ref   string `arg:"" help:"Category id or title."`
	Title string `arg:"" help:"New title."`
}

func (c *RenameCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Categories()
	if err != nil {
		return err
	}
	cat, err := find(vm, c.Ref)
	if err != nil {
		return err
	}
	updated, err := vm.Rename(cat.ID, c.Title)
	if err != nil {
		return err
	}
	ctx.Println(ctx.Render().Success(fmt.Sprintf("Renamed %s to %s", cat.Title, updated.Title)))
	return nil
}

type DeleteCmd struct {
	Ref string `arg:"" help:"Category id or title."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Categories()
	if err != nil {
		return err
	}
	cat, err := find(vm, c.Ref)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Delete category %q?", cat.Title))
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	if err := vm.Delete(cat.ID); err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotEmpty) {
			return fmt.Errorf("%s still has trackers; move or delete them first: %w", cat.Title, err)
		}
		return err
	}
	if ctx.Config != nil && ctx.Config.DefaultCategory == cat.ID {
		ctx.Config.DefaultCategory = ""
		if err := ctx.SaveConfig(); err != nil {
			return err
		}
	}
	ctx.Println(ctx.Render().Success("Deleted category " + cat.Title))
	return nil
}

// SelectCmd sets the default category for new trackers.
type SelectCmd struct {
	Ref string `arg:"" help:"Category id or title."`
}

func (c *SelectCmd) Run(ctx *cli.Context) error {
	vm, err := ctx.Categories()
	if err != nil {
		return err
	}
	cat, err := find(vm, c.Ref)
	if err != nil {
		return err
	}
	return selectCategory(ctx, cat)
}

func selectCategory(ctx *cli.Context, cat models.Category) error {
	if ctx.Config == nil {
		return errors.New("no configuration loaded")
	}
	ctx.Config.DefaultCategory = cat.ID
	if err := ctx.SaveConfig(); err != nil {
		return err
	}
	ctx.Println(ctx.Render().Success(cat.Title + " is now the default category"))
	return nil
}
