package backups

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tracker/internal/backup"
	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/constants"
)

var errUnsupported = errors.New("backups are only supported for SQLite databases; use pg_dump for PostgreSQL")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil, errUnsupported
	}
	return mgr, nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	info, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Println(ctx.Render().Success("Backup created: " + info.Name()))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	ctx.Printf("%s", ctx.Render().Backups(list, mgr.Dir(), mgr.Retention(), ctx.Today()))
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	r := ctx.Render()
	ctx.Println(r.Warning("This will replace your current database with the backup."))
	ctx.Println(r.Warning(fmt.Sprintf("All %s processes must be stopped before restore.", constants.AppName)))
	ctx.Println("   Concurrent access during restore can cause data corruption.")
	ctx.Println("A backup of your current database will be created before restoring.")
	ctx.Printf("\nRestore from: %s\n", backupPath)

	ok, err := ctx.Confirm("Continue?")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Restore cancelled.")
		return nil
	}

	if err := ctx.Store.Close(); err != nil {
		ctx.Println(r.Warning(fmt.Sprintf("failed to close database connection: %v", err)))
	}

	previous, err := mgr.Restore(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println(r.Success("Database restored successfully!"))
	if previous != nil {
		ctx.Printf("  The previous database was saved as %s\n", previous.Name())
	}
	return nil
}
