// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/utils"
)

// Config is the on-disk configuration, normally ~/.config/tracker/config.yaml.
type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string.
	Database    string `yaml:"database"`
	Timezone    string `yaml:"timezone"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	LogDir      string `yaml:"log_dir"`
	PinnedTitle string `yaml:"pinned_title"`
	// Language is a BCP 47 tag used for search folding and category order.
	Language string `yaml:"language"`
	// DefaultCategory is the id of the category new trackers go into.
	DefaultCategory string `yaml:"default_category,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = constants.DefaultConfigPath
	}
	if c.Timezone == "" {
		c.Timezone = constants.DefaultTimezone
	}
	if c.PinnedTitle == "" {
		c.PinnedTitle = constants.DefaultPinnedTitle
	}
	if c.Language == "" {
		c.Language = constants.DefaultLanguage
	}
}

// Validate checks fields that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []string
	if !utils.ValidateTimezone(c.Timezone) {
		errs = append(errs, fmt.Sprintf("timezone %q is not a valid IANA name", c.Timezone))
	}
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Sprintf("language %q is not a valid BCP 47 tag", c.Language))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q must be debug, info, warn or error", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// LanguageTag returns the configured language, falling back to und.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// DatabasePath returns Database with a leading ~ expanded.
func (c *Config) DatabasePath() string {
	return ExpandPath(c.Database)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// DefaultPath is the config file location, overridable via TRACKER_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(constants.EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile)
}
