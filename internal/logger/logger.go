package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/slotscore/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Level overrides the default warn level when Debug is off. Empty keeps warn.
	Level string
	// JSON switches the file output to one JSON object per line, used by serve.
	JSON bool
	// Stderr mirrors log lines to stderr even without Debug.
	Stderr bool
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level, err := resolveLevel(cfg)
	if err != nil {
		return err
	}

	var writer io.Writer = fileWriter
	if cfg.Debug || cfg.Stderr {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = newLogger(writer, level, cfg)
	return nil
}

// InitWriter points the global logger at w. Tests use it to capture output.
func InitWriter(w io.Writer, cfg Config) error {
	level, err := resolveLevel(cfg)
	if err != nil {
		return err
	}
	Logger = newLogger(w, level, cfg)
	return nil
}

func newLogger(w io.Writer, level log.Level, cfg Config) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if cfg.JSON {
		l.SetFormatter(log.JSONFormatter)
	}
	return l
}

func resolveLevel(cfg Config) (log.Level, error) {
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	if cfg.Level == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// With returns a child logger carrying keyvals, or nil before Init.
func With(keyvals ...interface{}) *log.Logger {
	if Logger == nil {
		return nil
	}
	return Logger.With(keyvals...)
}
