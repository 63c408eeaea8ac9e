package trackers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/tracker/internal/cli"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
)

// parseColor accepts a hex color or a 1-based palette index.
func parseColor(s string) (models.Color, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(models.Palette) {
			return models.Color{}, fmt.Errorf("palette index must be between 1 and %d", len(models.Palette))
		}
		return models.MustParseColor(models.Palette[n-1]), nil
	}
	return models.ParseColor(s)
}

// resolveCategory finds a category by id or title.
func resolveCategory(ctx *cli.Context, ref string) (models.Category, error) {
	cats, err := ctx.Categories()
	if err != nil {
		return models.Category{}, err
	}
	cat, ok := cats.Find(ref)
	if !ok {
		return models.Category{}, apperrors.NotFound("category", ref)
	}
	return cat, nil
}
