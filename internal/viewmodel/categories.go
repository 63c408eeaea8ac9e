package viewmodel

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"

	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

// ErrEmptyTitle is returned when a title is blank after trimming.
var ErrEmptyTitle = errors.New("title cannot be empty")

// Categories manages the category list and the current selection.
type Categories struct {
	store storage.Provider
	opts  options
	log   *log.Logger
	newID func() string

	mu         sync.Mutex
	categories []models.Category
	selected   string
}

func NewCategories(store storage.Provider, opts ...Option) *Categories {
	o := buildOptions("categories", opts)
	return &Categories{
		store: store,
		opts:  o,
		log:   o.log,
		newID: uuid.NewString,
	}
}

func (c *Categories) Load() error {
	categories, err := c.store.GetCategories()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = categories
	if c.selected != "" && c.indexOf(c.selected) < 0 {
		c.selected = ""
	}
	return nil
}

// List returns the categories sorted by title for the configured language.
func (c *Categories) List() []models.Category {
	c.mu.Lock()
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	c.mu.Unlock()

	col := collate.New(c.opts.lang, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Title, out[j].Title) < 0
	})
	return out
}

// Find resolves ref as an id, then an exact title, then a title ignoring case.
func (c *Categories) Find(ref string) (models.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(ref); i >= 0 {
		return c.categories[i], true
	}
	for _, cat := range c.categories {
		if cat.Title == ref {
			return cat, true
		}
	}
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(ref))
	for _, cat := range c.categories {
		if fold.String(cat.Title) == want {
			return cat, true
		}
	}
	return models.Category{}, false
}

// Add creates a category. Titles are trimmed and must not match an existing
// title ignoring case.
func (c *Categories) Add(title string) (models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Category{}, ErrEmptyTitle
	}

	c.mu.Lock()
	fold := cases.Fold()
	want := fold.String(title)
	for _, cat := range c.categories {
		if fold.String(cat.Title) == want {
			c.mu.Unlock()
			return models.Category{}, fmt.Errorf("category %q: %w", title, apperrors.ErrDuplicateName)
		}
	}
	c.mu.Unlock()

	cat := models.Category{ID: c.newID(), Title: title, CreatedAt: c.opts.now()}
	if err := c.store.AddCategory(cat); err != nil {
		return models.Category{}, err
	}

	c.mu.Lock()
	c.categories = append(c.categories, cat)
	c.mu.Unlock()
	c.log.Info("category added", "id", cat.ID, "title", cat.Title)
	return cat, nil
}

// Rename changes a category's title. Only an exact match with another
// category's title counts as a duplicate.
func (c *Categories) Rename(id, title string) (models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Category{}, ErrEmptyTitle
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return models.Category{}, apperrors.NotFound("category", id)
	}
	for _, cat := range c.categories {
		if cat.ID != id && cat.Title == title {
			c.mu.Unlock()
			return models.Category{}, fmt.Errorf("category %q: %w", title, apperrors.ErrDuplicateName)
		}
	}
	updated := c.categories[i]
	c.mu.Unlock()

	updated.Title = title
	if err := c.store.UpdateCategory(updated); err != nil {
		return models.Category{}, err
	}

	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.categories[i] = updated
	}
	c.mu.Unlock()
	c.log.Info("category renamed", "id", id, "title", title)
	return updated, nil
}

// Delete removes an empty category.
func (c *Categories) Delete(id string) error {
	if err := c.store.DeleteCategory(id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		c.categories = append(c.categories[:i:i], c.categories[i+1:]...)
	}
	if c.selected == id {
		c.selected = ""
	}
	c.log.Info("category deleted", "id", id)
	return nil
}

// Select marks id as the category new trackers go into.
func (c *Categories) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return apperrors.NotFound("category", id)
	}
	c.selected = id
	return nil
}

func (c *Categories) Selected() (models.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(c.selected); i >= 0 {
		return c.categories[i], true
	}
	return models.Category{}, false
}

// indexOf must be called with mu held.
func (c *Categories) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, cat := range c.categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}
