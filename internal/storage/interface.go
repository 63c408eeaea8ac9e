package storage

import (
	"github.com/julianstephens/tracker/internal/migration"
	"github.com/julianstephens/tracker/internal/models"
)

// Provider is the persistence collaborator used by the view models and the
// CLI. Lookups that miss return errors wrapping apperrors.ErrNotFound; driver
// failures come back as *apperrors.PersistenceError.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Trackers
	AddTracker(models.Tracker) error
	GetTracker(id string) (models.Tracker, error)
	GetAllTrackers() ([]models.Tracker, error)
	UpdateTracker(models.Tracker) error
	// DeleteTracker removes the tracker together with its completion records.
	DeleteTracker(id string) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetCategoryByTitle(title string) (models.Category, error)
	GetCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	// DeleteCategory fails with apperrors.ErrCategoryNotEmpty while trackers
	// still reference the category.
	DeleteCategory(id string) error
	CategoryTitle(id string) (string, bool)

	// Completion records. Adding an existing (tracker, day) pair is a no-op.
	AddCompletionRecord(models.CompletionRecord) error
	DeleteCompletionRecord(trackerID, day string) error
	GetCompletionRecords() ([]models.CompletionRecord, error)
	GetCompletionRecordsForTracker(trackerID string) ([]models.CompletionRecord, error)

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by providers backed by migrated SQL schemas.
type SchemaReporter interface {
	SchemaStatus() (migration.Status, error)
}

// Migrator is implemented by providers that can apply pending schema
// migrations in place.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}

// Unwrap returns the innermost provider beneath any decorators.
func Unwrap(p Provider) Provider {
	for {
		o, ok := p.(*Observed)
		if !ok {
			return p
		}
		p = o.Provider
	}
}
