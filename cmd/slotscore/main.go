package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/cli/backups"
	"github.com/julianstephens/slotscore/internal/cli/goals"
	"github.com/julianstephens/slotscore/internal/cli/insights"
	"github.com/julianstephens/slotscore/internal/cli/logs"
	"github.com/julianstephens/slotscore/internal/cli/system"
	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/constants"
	apperrors "github.com/julianstephens/slotscore/internal/errors"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/metrics"
	"github.com/julianstephens/slotscore/internal/notifier"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `name:"config-dir" help:"Directory holding config.toml, logs and the default database." default:"${config_dir}"`
	DB        string `help:"Database location: SQLite file, JSON data directory, or PostgreSQL connection string. PostgreSQL passwords must come from the OS keyring, ${env_db} or .pgpass, never the flag."`
	Backend   string `help:"Storage backend (sqlite, postgres, json). Detected from --db when omitted."`
	User      string `help:"User whose data to read and write."`
	Timezone  string `help:"IANA timezone that decides what 'today' is."`
	Debug     bool   `help:"Log debug output to stderr."`
	JSON      bool   `help:"Print machine-readable JSON instead of text."`

	Init    system.InitCmd    `cmd:"" help:"Initialize slotscore storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the analytics API over HTTP."`

	Log    logs.LogCmd    `cmd:"" help:"Score a 30-minute slot."`
	Day    logs.DayCmd    `cmd:"" help:"Show the slots logged on a day."`
	Delete logs.DeleteCmd `cmd:"" help:"Delete a logged slot by id."`

	Goals      goals.GoalsCmd      `cmd:"" help:"Show or update daily, weekly and monthly goals."`
	Progress   goals.ProgressCmd   `cmd:"" help:"Show progress towards each goal."`
	Categories goals.CategoriesCmd `cmd:"" help:"Manage logging categories."`

	Stats        insights.StatsCmd        `cmd:"" help:"Summary statistics for a period."`
	Streak       insights.StreakCmd       `cmd:"" help:"Current and longest daily-goal streaks."`
	Compare      insights.CompareCmd      `cmd:"" help:"Compare this week or month with the previous one."`
	Trend        insights.TrendCmd        `cmd:"" help:"Daily score totals over a period."`
	Patterns     insights.PatternsCmd     `cmd:"" help:"Rank weekdays and hours by average score."`
	Heatmap      insights.HeatmapCmd      `cmd:"" help:"Hour by weekday heatmap of average scores."`
	Distribution insights.DistributionCmd `cmd:"" help:"How often each score was logged."`
	Report       insights.ReportCmd       `cmd:"" help:"Full report for a period."`
	Recommend    insights.RecommendCmd    `cmd:"" help:"Tips based on your history."`
	Calendar     insights.CalendarCmd     `cmd:"" help:"Goal achievement calendar."`

	Backup  backups.BackupCmd `cmd:"" help:"Manage SQLite database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Config  system.ConfigCmd  `cmd:"" help:"Show or create the config file."`
}

// Commands that never touch the store.
var storeless = map[string]bool{"keyring": true, "config": true}

// Commands that prepare or inspect the store themselves instead of loading it.
var selfLoading = map[string]bool{"init": true, "doctor": true}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Productivity slot scoring and analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_dir":  constants.DefaultConfigDir,
			"env_db":      constants.EnvDBConnection,
			"period_help": insights.PeriodHelp,
		},
	)
	command := strings.Fields(kctx.Command())[0]

	appCtx, err := setup(command)
	apperrors.Fatal(err)

	err = kctx.Run(appCtx)
	if appCtx.Store != nil {
		if closeErr := appCtx.Store.Close(); closeErr != nil {
			logger.Warn("Failed to close store", "error", closeErr)
		}
	}
	apperrors.Fatal(err)
}

func setup(command string) (*cli.Context, error) {
	configDir, err := config.ExpandPath(CLI.ConfigDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.Path(configDir), configDir)
	if err != nil {
		return nil, apperrors.Usage(err)
	}
	if err := applyFlags(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Usage(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Level:     cfg.Log.Level,
		JSON:      cfg.Log.JSON,
		Stderr:    command == "serve",
	}); err != nil {
		return nil, err
	}
	logger.Debug("Starting", "command", command, "backend", cfg.Storage.Backend, "user", cfg.User)

	appCtx := &cli.Context{
		Config:    cfg,
		ConfigDir: configDir,
		JSON:      CLI.JSON,
	}
	if storeless[command] {
		return appCtx, nil
	}

	store, err := cli.ResolveStore(cfg)
	if err != nil {
		return nil, err
	}
	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}
	appCtx.Store = store

	opts := service.Options{
		UserID:   cfg.User,
		Timezone: cfg.Timezone,
		Notifier: notifier.New(cfg.Notifications),
	}
	var provider storage.Provider = store
	if command == "serve" && cfg.Server.Metrics {
		appCtx.Metrics = metrics.New()
		provider = metrics.Instrument(store, appCtx.Metrics)
		opts.Recorder = appCtx.Metrics
	}

	appCtx.Service, err = service.New(provider, opts)
	if err != nil {
		return nil, apperrors.Usage(err)
	}
	return appCtx, nil
}

// applyFlags layers the global flags over the config file.
func applyFlags(cfg *config.Config) error {
	if CLI.DB != "" {
		location, err := config.ExpandPath(CLI.DB)
		if err != nil {
			return err
		}
		cfg.Storage.Path = location
		cfg.Storage.Backend = cli.DetectBackend(location)
	}
	if CLI.Backend != "" {
		cfg.Storage.Backend = CLI.Backend
	}
	if CLI.User != "" {
		cfg.User = CLI.User
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Log.Level = "debug"
	}
	return nil
}
