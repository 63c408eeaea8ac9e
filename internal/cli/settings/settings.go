// Package settings shows and edits the configuration file.
package settings

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/storage/postgres"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Database    *string `help:"SQLite path or PostgreSQL connection string without a password."`
	Timezone    *string `help:"IANA time zone used to decide what 'today' is."`
	PinnedTitle *string `help:"Title of the pinned group."`
	Language    *string `help:"BCP 47 language tag for search and category order."`
	LogLevel    *string `help:"Log level: debug, info, warn or error."`
	Debug       *bool   `help:"Mirror logs to stderr."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Config File:    %s\n", ctx.ConfigPath)
		ctx.Printf("  Database:       %s\n", keyring.MaskPassword(cfg.Database))
		ctx.Printf("  Timezone:       %s\n", cfg.Timezone)
		ctx.Printf("  Pinned Title:   %s\n", cfg.PinnedTitle)
		ctx.Printf("  Language:       %s\n", cfg.Language)
		ctx.Println("\nLogging:")
		ctx.Printf("  Log Level:      %s\n", orDefault(cfg.LogLevel, "warn"))
		ctx.Printf("  Debug:          %v\n", cfg.Debug)
		return nil
	}

	next := *cfg
	updated := false
	if c.Database != nil {
		if postgres.IsConnString(*c.Database) {
			if _, err := postgres.ValidateConnString(*c.Database); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return cli.ErrEmbeddedCredentials
				}
				return err
			}
		}
		next.Database = *c.Database
		updated = true
	}
	if c.Timezone != nil {
		next.Timezone = *c.Timezone
		updated = true
	}
	if c.PinnedTitle != nil {
		next.PinnedTitle = *c.PinnedTitle
		updated = true
	}
	if c.Language != nil {
		next.Language = *c.Language
		updated = true
	}
	if c.LogLevel != nil {
		next.LogLevel = *c.LogLevel
		updated = true
	}
	if c.Debug != nil {
		next.Debug = *c.Debug
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	if err := ctx.SaveConfig(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
