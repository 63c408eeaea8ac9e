package constants

import "time"

const (
	AppName            = "tracker"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/tracker"
	DefaultConfigPath  = "~/.config/tracker/tracker.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment overrides
	EnvDBConnection = "TRACKER_DB_CONNECTION"
	EnvConfigFile   = "TRACKER_CONFIG"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracker-"
	BackupFileSuffix = ".db"

	// Tracker constraints
	MaxTitleLength = 38

	// Defaults
	DefaultPinnedTitle = "Pinned"
	DefaultTimezone    = "Local"
	DefaultLanguage    = "und"

	// Postgres pool settings
	PostgresMaxOpenConns    = 25
	PostgresMaxIdleConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute
)
