package constants

import "time"

const (
	AppName            = "slotscore"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/slotscore"
	DefaultDBPath      = "~/.config/slotscore/slotscore.db"
	ConfigFileName     = "config.toml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "slotscore-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultListenAddr    = "127.0.0.1:8420"
	ServerLockfileName   = "slotscore-server.lock"
	ServerReadTimeout    = 10 * time.Second
	ServerWriteTimeout   = 30 * time.Second
	ServerShutdownPeriod = 5 * time.Second

	// Notify constants
	NotificationTitle = "slotscore"

	// EnvDBConnection overrides the configured database location
	EnvDBConnection = "SLOTSCORE_DB_CONNECTION"
)
