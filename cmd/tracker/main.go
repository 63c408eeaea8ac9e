package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/cli/backups"
	"github.com/julianstephens/tracker/internal/cli/categories"
	"github.com/julianstephens/tracker/internal/cli/settings"
	"github.com/julianstephens/tracker/internal/cli/system"
	"github.com/julianstephens/tracker/internal/cli/trackers"
	"github.com/julianstephens/tracker/internal/config"
	"github.com/julianstephens/tracker/internal/constants"
	apperrors "github.com/julianstephens/tracker/internal/errors"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite path or PostgreSQL connection string. Credentials must NOT be embedded; use TRACKER_DB_CONNECTION, .pgpass or the OS keyring instead."`
	Config  string `help:"Path to the YAML config file." type:"path"`
	Yes     bool   `short:"y" help:"Answer yes to every confirmation."`

	List   trackers.ListCmd   `cmd:"" help:"Show the trackers for a day." default:"withargs"`
	Add    trackers.AddCmd    `cmd:"" help:"Add a habit or event."`
	Edit   trackers.EditCmd   `cmd:"" help:"Edit a tracker."`
	Delete trackers.DeleteCmd `cmd:"" help:"Delete a tracker and its history."`
	Mark   trackers.MarkCmd   `cmd:"" help:"Toggle a tracker's completion for a day."`
	Pin    trackers.PinCmd    `cmd:"" help:"Pin or unpin a tracker."`
	Show   trackers.ShowCmd   `cmd:"" help:"Show a tracker and its history."`
	Stats  trackers.StatsCmd  `cmd:"" help:"Show streaks and totals."`

	Category struct {
		Add    categories.AddCmd    `cmd:"" help:"Add a category."`
		List   categories.ListCmd   `cmd:"" help:"List categories." default:"1"`
		Rename categories.RenameCmd `cmd:"" help:"Rename a category."`
		Delete categories.DeleteCmd `cmd:"" help:"Delete an empty category."`
		Select categories.SelectCmd `cmd:"" help:"Choose the default category for new trackers."`
	} `cmd:"" help:"Manage categories."`

	Init     system.InitCmd     `cmd:"" help:"Initialize tracker storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

// Commands that open the database themselves or never touch it.
var skipLoad = map[string]bool{
	"init":     true,
	"doctor":   true,
	"keyring":  true,
	"settings": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and event tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}

	conn, err := keyring.Resolve(CLI.DB, cfg.Database)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug: cfg.Debug,
		Dir:   logDir(cfg, conn),
		Level: cfg.LogLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("starting", "version", constants.Version, "command", ctx.Command(), "db_source", conn.Source)

	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.OpenStore(conn)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: configPath,
		Location:   loc,
		AssumeYes:  CLI.Yes,
	}

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !skipLoad[command[0]] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// logDir keeps logs next to a SQLite database, or in the config directory
// for PostgreSQL.
func logDir(cfg *config.Config, conn keyring.Connection) string {
	if cfg.LogDir != "" {
		return config.ExpandPath(cfg.LogDir)
	}
	if postgres.IsConnString(conn.Value) {
		return config.ExpandPath(constants.DefaultConfigDir)
	}
	return filepath.Dir(config.ExpandPath(conn.Value))
}
