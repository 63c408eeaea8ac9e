// Package cli holds the state shared by every command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/cases"

	"github.com/julianstephens/tracker/internal/backup"
	"github.com/julianstephens/tracker/internal/config"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/render"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/postgres"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
	"github.com/julianstephens/tracker/internal/utils"
	"github.com/julianstephens/tracker/internal/viewmodel"
)

// ErrEmbeddedCredentials is returned when a connection string given on the
// command line or in the config file carries a password.
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed here; store them with 'tracker keyring set' or TRACKER_DB_CONNECTION")

type Context struct {
	Store    storage.Provider
	Config   *config.Config
	// ConfigPath is where Config was loaded from and is saved to.
	ConfigPath string
	Location *time.Location
	Now      func() time.Time
	Out      io.Writer
	// AssumeYes skips interactive confirmations.
	AssumeYes bool
}

// OpenStore builds the provider for conn, wrapped so writes are published.
// Passwords are only accepted from the keyring or the environment.
func OpenStore(conn keyring.Connection) (*storage.Observed, error) {
	if postgres.IsConnString(conn.Value) {
		if conn.Source == keyring.SourceFlag || conn.Source == keyring.SourceConfig {
			if _, err := postgres.ValidateConnString(conn.Value); errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, ErrEmbeddedCredentials
			}
		}
		logger.Debug("using postgres store", "source", conn.Source)
		return storage.WithFeed(postgres.New(conn.Value)), nil
	}
	path := config.ExpandPath(conn.Value)
	logger.Debug("using sqlite store", "path", path, "source", conn.Source)
	return storage.WithFeed(sqlite.NewStore(path)), nil
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Today is the current time in the configured time zone.
func (c *Context) Today() time.Time {
	return c.now().In(c.location())
}

// ResolveDate parses today, yesterday, tomorrow or YYYY-MM-DD.
func (c *Context) ResolveDate(input string) (time.Time, error) {
	return utils.ResolveDate(strings.ToLower(strings.TrimSpace(input)), c.now(), c.location())
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) Render() *render.Renderer {
	return render.New(c.out())
}

// ViewOptions configures view models from the run's clock and config.
func (c *Context) ViewOptions() []viewmodel.Option {
	opts := []viewmodel.Option{
		viewmodel.WithClock(c.now),
		viewmodel.WithLocation(c.location()),
	}
	if c.Config != nil {
		opts = append(opts,
			viewmodel.WithPinnedTitle(c.Config.PinnedTitle),
			viewmodel.WithLanguage(c.Config.LanguageTag()),
		)
	}
	return opts
}

// Trackers loads the tracker view model.
func (c *Context) Trackers() (*viewmodel.Trackers, error) {
	vm := viewmodel.NewTrackers(c.Store, c.ViewOptions()...)
	if err := vm.Load(); err != nil {
		vm.Close()
		return nil, err
	}
	return vm, nil
}

// Categories loads the category view model with the configured default
// category selected.
func (c *Context) Categories() (*viewmodel.Categories, error) {
	vm := viewmodel.NewCategories(c.Store, c.ViewOptions()...)
	if err := vm.Load(); err != nil {
		return nil, err
	}
	if c.Config != nil && c.Config.DefaultCategory != "" {
		if err := vm.Select(c.Config.DefaultCategory); err != nil {
			logger.Debug("configured default category is gone", "id", c.Config.DefaultCategory)
		}
	}
	return vm, nil
}

// SaveConfig writes Config back to ConfigPath.
func (c *Context) SaveConfig() error {
	if c.Config == nil {
		return errors.New("no configuration loaded")
	}
	path := c.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	return c.Config.Save(path)
}

// ResolveTracker finds a tracker by id, exact title, or title ignoring case.
func ResolveTracker(vm *viewmodel.Trackers, ref string) (models.Tracker, error) {
	if t, ok := vm.Tracker(ref); ok {
		return t, nil
	}

	all := vm.All()
	for _, t := range all {
		if t.Title == ref {
			return t, nil
		}
	}

	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(ref))
	var matches []models.Tracker
	for _, t := range all {
		if fold.String(t.Title) == want {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Tracker{}, apperrors.NotFound("tracker", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Tracker{}, fmt.Errorf("%q matches %d trackers, use the id instead", ref, len(matches))
	}
}

// Confirm asks a yes/no question unless AssumeYes is set.
func (c *Context) Confirm(title string) (bool, error) {
	if c.AssumeYes {
		return true, nil
	}
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// BackupManager returns the manager for a SQLite store, or nil for stores
// that are not backed by a local file.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := storage.Unwrap(c.Store).(*sqlite.Store); !ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// PerformAutomaticBackup snapshots the database before a destructive
// command. Failures are logged and otherwise ignored.
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
