package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/backup"
	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/constants"
	apperrors "github.com/julianstephens/slotscore/internal/errors"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/metrics"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/storage/sqlite"
	"github.com/julianstephens/slotscore/internal/utils"
)

// ErrBackupUnsupported is returned by backup commands on non-SQLite stores.
var ErrBackupUnsupported = errors.New("backups are only supported for the sqlite backend")

// Context is passed to every command's Run method.
type Context struct {
	// Store is the unwrapped provider, so commands can reach backend specifics.
	Store     storage.Provider
	Service   *service.Service
	Config    config.Config
	ConfigDir string
	Metrics   *metrics.Metrics
	JSON      bool

	Out io.Writer
	In  io.Reader
}

func (c *Context) stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.stdout(), args...)
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// Confirm asks a y/N question on In and reports whether the answer was yes.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// BackupManager returns a manager for the SQLite database file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, ErrBackupUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Config.Backup.Keep), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backup.Auto {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseDate parses a YYYY-MM-DD flag value. Empty means today.
func (c *Context) ParseDate(value string) (time.Time, error) {
	if value == "" {
		return c.Service.Today(), nil
	}
	date, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.Usagef("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// ParsePeriod validates a --period flag value.
func ParsePeriod(value string) (analytics.Period, error) {
	period, err := analytics.ParsePeriod(value)
	if err != nil {
		return "", apperrors.Usage(err)
	}
	return period, nil
}

// ParseSlot accepts a slot index (0-47) or a HH:MM time.
func ParseSlot(value string) (int, error) {
	if strings.Contains(value, ":") {
		slot, err := utils.SlotFromTime(value)
		if err != nil {
			return 0, apperrors.Usagef("invalid time %q, expected HH:MM", value)
		}
		return slot, nil
	}
	slot, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.Usagef("invalid slot %q, expected 0-47 or HH:MM", value)
	}
	if slot < 0 || slot >= constants.TotalTimeSlots {
		return 0, apperrors.Usagef("slot %d out of range 0-%d", slot, constants.TotalTimeSlots-1)
	}
	return slot, nil
}

// Bar renders a fixed-width text progress bar for percent in [0, 100].
func Bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
