// Package config loads slotscore settings from the TOML config file.
//
// Precedence, lowest first: built-in defaults, the config file, then CLI flags
// applied by the caller. A missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/validation"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendJSON     = "json"
)

// Config is the on-disk shape of config.toml.
type Config struct {
	User          string `toml:"user" validate:"required"`
	Timezone      string `toml:"timezone" validate:"required,tz"`
	Notifications bool   `toml:"notifications"`

	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	Backup  BackupConfig  `toml:"backup"`
	Display DisplayConfig `toml:"display"`
}

// StorageConfig selects and locates the store. Path is a SQLite file, a JSON
// data directory, or a Postgres DSN without a password.
type StorageConfig struct {
	Backend string `toml:"backend" validate:"oneof=sqlite postgres json"`
	Path    string `toml:"path" validate:"required"`
}

type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `toml:"json"`
}

type ServerConfig struct {
	Listen  string `toml:"listen" validate:"required,hostname_port"`
	Metrics bool   `toml:"metrics"`
}

type BackupConfig struct {
	Auto bool `toml:"auto"`
	Keep int  `toml:"keep" validate:"gte=1"`
}

type DisplayConfig struct {
	// Recommendations caps how many tips are shown before "more".
	Recommendations int `toml:"recommendations" validate:"gte=1"`
}

// Default returns the built-in configuration rooted at configDir.
func Default(configDir string) Config {
	return Config{
		User:          constants.DefaultUserID,
		Timezone:      constants.DefaultTimezone,
		Notifications: constants.DefaultNotifications,
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(configDir, constants.AppName+".db"),
		},
		Log: LogConfig{Level: "warn"},
		Server: ServerConfig{
			Listen:  constants.DefaultListenAddr,
			Metrics: true,
		},
		Backup: BackupConfig{
			Auto: true,
			Keep: constants.MaxBackups,
		},
		Display: DisplayConfig{Recommendations: constants.DefaultRecommendLim},
	}
}

// Path returns the config file location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.ConfigFileName)
}

// Load reads path over the defaults for configDir. A missing file yields the
// defaults unchanged.
func Load(path, configDir string) (Config, error) {
	cfg := Default(configDir)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return cfg, fmt.Errorf("invalid config file %s (line %d, column %d): %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	cfg.Storage.Path, err = ExpandPath(cfg.Storage.Path)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks field rules and rejects Postgres DSNs that carry a password.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Backend == BackendPostgres && HasEmbeddedCredentials(c.Storage.Path) {
		return errors.New("invalid config: postgres connection strings must not embed a password; use the keyring or " + constants.EnvDBConnection)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgresDSN reports whether s looks like a Postgres connection string.
func IsPostgresDSN(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a Postgres DSN includes a password,
// in URL form (user:pass@) or key/value form (password=...).
func HasEmbeddedCredentials(dsn string) bool {
	if IsPostgresDSN(dsn) {
		u, err := url.Parse(dsn)
		if err != nil || u.User == nil {
			return false
		}
		_, ok := u.User.Password()
		return ok
	}
	for _, field := range strings.Fields(dsn) {
		if strings.HasPrefix(strings.ToLower(field), "password=") {
			return true
		}
	}
	return false
}
