package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/keyring"
	"github.com/julianstephens/slotscore/internal/migration"
	"github.com/julianstephens/slotscore/internal/utils"
)

// errSkipped marks a check that does not apply to the configured backend.
var errSkipped = errors.New("not applicable")

type DoctorCmd struct{}

type doctorReport struct {
	ctx      *cli.Context
	hasError bool
}

// check prints one result line. Warnings are reported but never fail doctor.
func (r *doctorReport) check(name string, err error, warnOnly bool) {
	switch {
	case err == nil:
		r.ctx.Printf("✓ %s: OK\n", name)
	case errors.Is(err, errSkipped):
		r.ctx.Printf("⊘ %s: SKIPPED (%v)\n", name, err)
	case warnOnly:
		r.ctx.Printf("⚠ %s: WARNING\n", name)
		r.ctx.Printf("   %v\n", err)
	default:
		r.ctx.Printf("❌ %s: FAIL\n", name)
		r.ctx.Printf("   Error: %v\n", err)
		r.hasError = true
	}
}

func (r *doctorReport) skip(name, reason string) {
	r.check(name, fmt.Errorf("%w: %s", errSkipped, reason), false)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	r := &doctorReport{ctx: ctx}

	r.check("Configuration", ctx.Config.Validate(), false)

	// Check 1: storage reachable
	reachErr := checkStoreReachable(ctx)
	r.check("Storage reachable", reachErr, false)
	reachable := reachErr == nil

	// Checks 2-3: schema (SQL backends only)
	if reachable {
		r.check("Schema version", checkSchemaVersion(ctx), false)
		r.check("Migrations complete", checkMigrationsComplete(ctx), false)
	} else {
		r.skip("Schema version", "storage not reachable")
		r.skip("Migrations complete", "storage not reachable")
	}

	// Check 4: backups present (warning only)
	r.check("Backups present", checkBackupsPresent(ctx), true)

	// Check 5: stored data is valid
	if reachable {
		r.check("Data validation", checkValidation(ctx), false)
	} else {
		r.skip("Data validation", "storage not reachable")
	}

	// Check 6: clock/timezone sanity
	r.check("Clock/timezone", checkClockTimezone(ctx.Config.Timezone), false)

	// Check 7: keyring (postgres only, warning)
	r.check("OS keyring", checkKeyring(ctx), true)

	ctx.Println()
	if r.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if db := sqlDB(ctx); db != nil {
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		return fmt.Errorf("%w: %s backend has no schema", errSkipped, ctx.Config.Storage.Backend)
	}
	status, err := store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("%w: version %d, latest known %d", migration.ErrSchemaTooNew, status.Current, status.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		return fmt.Errorf("%w: %s backend has no migrations", errSkipped, ctx.Config.Storage.Backend)
	}
	status, err := store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if status.Pending > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", status.Current, status.Latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return fmt.Errorf("%w: %s backend", errSkipped, ctx.Config.Storage.Backend)
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkValidation loads every log for the current user and checks each entry
// and the (date, slot) uniqueness the stores are meant to enforce.
func checkValidation(ctx *cli.Context) error {
	userID := ctx.Service.UserID()

	goals, err := ctx.Store.GetUserGoals(userID)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}
	if err := goals.Validate(); err != nil {
		return err
	}

	logs, err := ctx.Store.GetLogsByDateRange(userID, time.Time{}, endOfTime)
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}
	type key struct {
		day  string
		slot int
	}
	seen := make(map[key]bool, len(logs))
	ids := make(map[string]bool, len(logs))
	for _, entry := range logs {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("log %s: %w", entry.ID, err)
		}
		k := key{entry.Day(), entry.TimeSlot}
		if seen[k] {
			return fmt.Errorf("duplicate logs for %s slot %d", k.day, k.slot)
		}
		seen[k] = true
		if ids[entry.ID] {
			return fmt.Errorf("duplicate log ID found: %s", entry.ID)
		}
		ids[entry.ID] = true
	}

	if _, err := ctx.Store.GetCategories(userID); err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	return nil
}

func checkClockTimezone(timezone string) error {
	now := time.Now()
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Config.Storage.Backend != config.BackendPostgres {
		return fmt.Errorf("%w: only used by the postgres backend", errSkipped)
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
