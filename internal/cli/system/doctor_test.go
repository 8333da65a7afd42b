package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/slotscore/internal/backup"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage/jsonstore"
)

func TestDoctorCmd_HealthyDB(t *testing.T) {
	ctx, _, out := setupSQLite(t)

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, out.String())
	}
	// Missing backups is a warning, not a failure
	if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
		t.Errorf("expected backup warning:\n%s", out.String())
	}
}

func TestDoctorCmd_WithBackups(t *testing.T) {
	ctx, store, out := setupSQLite(t)

	mgr := backup.NewManager(store.GetConfigPath(), 0)
	if _, err := mgr.Create(); err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("doctor command failed with backups present: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups check to pass:\n%s", out.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store, _ := setupSQLite(t)

	// Set an impossible future schema version
	db := store.GetDB()
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
}

func TestCheckMigrationsComplete_Incomplete(t *testing.T) {
	ctx, store, _ := setupSQLite(t)

	db := store.GetDB()
	if _, err := db.Exec("UPDATE schema_version SET version = 1"); err != nil {
		t.Fatalf("failed to lower schema version: %v", err)
	}

	err := checkMigrationsComplete(ctx)
	if err == nil || !strings.Contains(err.Error(), "migrations incomplete") {
		t.Errorf("checkMigrationsComplete() = %v, want incomplete error", err)
	}
}

func TestDoctorCmd_JSONBackendSkipsSQLChecks(t *testing.T) {
	ctx, _, out := setupJSON(t, jsonDir(t))

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("doctor failed on json store: %v\n%s", err, out.String())
	}
	for _, want := range []string{
		"⊘ Schema version: SKIPPED",
		"⊘ Migrations complete: SKIPPED",
		"⊘ Backups present: SKIPPED",
		"⊘ OS keyring: SKIPPED",
		"✓ Data validation: OK",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_UninitializedStore(t *testing.T) {
	ctx, _, out := setupJSON(t, jsonDir(t))
	// Point at a directory that was never initialized
	ctx.Store = jsonstore.NewStore(jsonDir(t))

	cmd := &DoctorCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("doctor should fail when storage is missing")
	}
	if !strings.Contains(out.String(), "⊘ Data validation: SKIPPED") {
		t.Errorf("data validation should be skipped:\n%s", out.String())
	}
}

func TestCheckValidation_LoggedData(t *testing.T) {
	ctx, store, _ := setupSQLite(t)

	entry, err := models.NewLogEntry("local", refNow, 10, 3, "Work", "")
	if err != nil {
		t.Fatalf("NewLogEntry failed: %v", err)
	}
	if _, err := store.LogProductivity(entry); err != nil {
		t.Fatalf("LogProductivity failed: %v", err)
	}
	if err := checkValidation(ctx); err != nil {
		t.Errorf("checkValidation() on clean data = %v", err)
	}
}

func TestCheckClockTimezone(t *testing.T) {
	if err := checkClockTimezone("Europe/Berlin"); err != nil {
		t.Errorf("valid timezone rejected: %v", err)
	}
	if err := checkClockTimezone("Local"); err != nil {
		t.Errorf("Local rejected: %v", err)
	}
	if err := checkClockTimezone("Mars/Olympus"); err == nil {
		t.Error("invalid timezone accepted")
	}
}
