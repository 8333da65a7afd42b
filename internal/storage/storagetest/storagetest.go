// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
)

// Factory returns an initialized, empty store. Cleanup is the caller's job.
type Factory func(t *testing.T) storage.Provider

var day0 = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

func mustEntry(t *testing.T, user string, day time.Time, slot, score int, category string) models.LogEntry {
	t.Helper()
	e, err := models.NewLogEntry(user, day, slot, score, category, "")
	if err != nil {
		t.Fatalf("NewLogEntry failed: %v", err)
	}
	return e
}

// Run exercises the full Provider contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("LogUpsertKeepsID", func(t *testing.T) { testLogUpsert(t, newStore(t)) })
	t.Run("LogQueries", func(t *testing.T) { testLogQueries(t, newStore(t)) })
	t.Run("DeleteLog", func(t *testing.T) { testDeleteLog(t, newStore(t)) })
	t.Run("Goals", func(t *testing.T) { testGoals(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("InvalidEntry", func(t *testing.T) { testInvalidEntry(t, newStore(t)) })
}

func testLogUpsert(t *testing.T, s storage.Provider) {
	first, err := s.LogProductivity(mustEntry(t, "u1", day0, 18, 2, "Work"))
	if err != nil {
		t.Fatalf("LogProductivity failed: %v", err)
	}

	second := mustEntry(t, "u1", day0.Add(5*time.Hour), 18, 4, "Study")
	saved, err := s.LogProductivity(second)
	if err != nil {
		t.Fatalf("LogProductivity (update) failed: %v", err)
	}
	if saved.ID != first.ID {
		t.Errorf("upsert changed ID from %s to %s", first.ID, saved.ID)
	}

	got, err := s.GetLogBySlot("u1", day0, 18)
	if err != nil {
		t.Fatalf("GetLogBySlot failed: %v", err)
	}
	if got.Score != 4 || got.Category != "Study" || got.ID != first.ID {
		t.Errorf("GetLogBySlot = %+v, want updated score 4 Study", got)
	}
	if !got.LogDate.Equal(day0) {
		t.Errorf("LogDate = %v, want %v", got.LogDate, day0)
	}

	logs, err := s.GetLogsByDate("u1", day0)
	if err != nil {
		t.Fatalf("GetLogsByDate failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("got %d logs after upsert, want 1", len(logs))
	}
}

func testLogQueries(t *testing.T, s storage.Provider) {
	entries := []models.LogEntry{
		mustEntry(t, "u1", day0, 20, 3, "Work"),
		mustEntry(t, "u1", day0, 2, 1, ""),
		mustEntry(t, "u1", day0.AddDate(0, 0, -1), 10, 4, "Health"),
		mustEntry(t, "u1", day0.AddDate(0, 0, -5), 10, 2, "Work"),
		mustEntry(t, "u2", day0, 20, 4, "Work"),
	}
	for _, e := range entries {
		if _, err := s.LogProductivity(e); err != nil {
			t.Fatalf("LogProductivity failed: %v", err)
		}
	}

	today, err := s.GetLogsByDate("u1", day0)
	if err != nil {
		t.Fatalf("GetLogsByDate failed: %v", err)
	}
	if len(today) != 2 || today[0].TimeSlot != 2 || today[1].TimeSlot != 20 {
		t.Errorf("GetLogsByDate = %+v, want slots 2 and 20 in order", today)
	}
	if today[0].Category != "unspecified" {
		t.Errorf("blank category stored as %q", today[0].Category)
	}

	week, err := s.GetLogsByDateRange("u1", day0.AddDate(0, 0, -2), day0)
	if err != nil {
		t.Fatalf("GetLogsByDateRange failed: %v", err)
	}
	if len(week) != 3 {
		t.Errorf("range returned %d logs, want 3", len(week))
	}
	if len(week) > 0 && !week[0].LogDate.Equal(day0.AddDate(0, 0, -1)) {
		t.Errorf("range not ordered by date: first = %v", week[0].LogDate)
	}

	other, err := s.GetLogsByDate("u2", day0)
	if err != nil {
		t.Fatalf("GetLogsByDate(u2) failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("u2 has %d logs, want 1", len(other))
	}

	empty, err := s.GetLogsByDate("nobody", day0)
	if err != nil {
		t.Fatalf("GetLogsByDate(nobody) failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("unknown user logs = %v, want empty slice", empty)
	}

	if _, err := s.GetLogBySlot("u1", day0, 47); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetLogBySlot(missing) error = %v, want ErrNotFound", err)
	}
}

func testDeleteLog(t *testing.T, s storage.Provider) {
	saved, err := s.LogProductivity(mustEntry(t, "u1", day0, 5, 2, "Work"))
	if err != nil {
		t.Fatalf("LogProductivity failed: %v", err)
	}

	if err := s.DeleteLog("u2", saved.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteLog by another user = %v, want ErrNotFound", err)
	}
	if err := s.DeleteLog("u1", saved.ID); err != nil {
		t.Fatalf("DeleteLog failed: %v", err)
	}
	if err := s.DeleteLog("u1", saved.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteLog = %v, want ErrNotFound", err)
	}
	logs, err := s.GetLogsByDate("u1", day0)
	if err != nil {
		t.Fatalf("GetLogsByDate failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("log still present after delete: %+v", logs)
	}
}

func testGoals(t *testing.T, s storage.Provider) {
	goals, err := s.GetUserGoals("u1")
	if err != nil {
		t.Fatalf("GetUserGoals failed: %v", err)
	}
	if goals != models.DefaultGoals() {
		t.Errorf("unsaved goals = %+v, want defaults", goals)
	}

	want := models.Goals{Daily: 40, Weekly: 250, Monthly: 900}
	if err := s.SaveUserGoals("u1", want); err != nil {
		t.Fatalf("SaveUserGoals failed: %v", err)
	}
	want.Daily = 60
	if err := s.SaveUserGoals("u1", want); err != nil {
		t.Fatalf("SaveUserGoals (update) failed: %v", err)
	}

	got, err := s.GetUserGoals("u1")
	if err != nil {
		t.Fatalf("GetUserGoals failed: %v", err)
	}
	if got != want {
		t.Errorf("GetUserGoals = %+v, want %+v", got, want)
	}

	if err := s.SaveUserGoals("u1", models.Goals{Daily: -1}); err == nil {
		t.Error("negative goal accepted")
	}
}

func names(cats []models.Category) map[string]bool {
	out := make(map[string]bool, len(cats))
	for _, c := range cats {
		out[c.Name] = true
	}
	return out
}

func testCategories(t *testing.T, s storage.Provider) {
	cats, err := s.GetCategories("u1")
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(cats) != 7 {
		t.Errorf("fresh user has %d categories, want 7 built-ins", len(cats))
	}

	reading, err := models.NewCategory("Reading", "📖")
	if err != nil {
		t.Fatalf("NewCategory failed: %v", err)
	}
	if err := s.AddCategory("u1", reading); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if err := s.AddCategory("u1", reading); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate AddCategory = %v, want ErrAlreadyExists", err)
	}

	if err := s.DeleteCategory("u1", "work"); err != nil {
		t.Fatalf("DeleteCategory(built-in) failed: %v", err)
	}
	if err := s.DeleteCategory("u1", "Reading"); err != nil {
		t.Fatalf("DeleteCategory(custom) failed: %v", err)
	}
	if err := s.DeleteCategory("u1", "Reading"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteCategory = %v, want ErrNotFound", err)
	}

	cats, err = s.GetCategories("u1")
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	got := names(cats)
	if got["Work"] || got["Reading"] || !got["Study"] {
		t.Errorf("after deletes categories = %v", got)
	}

	// Other users are unaffected.
	if others, _ := s.GetCategories("u2"); !names(others)["Work"] {
		t.Error("hiding Work for u1 hid it for u2")
	}

	restore, _ := models.NewCategory("Work", "")
	if err := s.AddCategory("u1", restore); err != nil {
		t.Fatalf("restoring built-in failed: %v", err)
	}
	again, _ := models.NewCategory("Reading", "📚")
	if err := s.AddCategory("u1", again); err != nil {
		t.Fatalf("re-adding custom failed: %v", err)
	}
	cats, _ = s.GetCategories("u1")
	if got := names(cats); !got["Work"] || !got["Reading"] || len(cats) != 8 {
		t.Errorf("after restore categories = %v", got)
	}
}

func testInvalidEntry(t *testing.T, s storage.Provider) {
	bad := models.LogEntry{ID: "x", UserID: "u1", LogDate: day0, TimeSlot: 48, Score: 2}
	if _, err := s.LogProductivity(bad); err == nil {
		t.Error("slot 48 accepted")
	}
	bad.TimeSlot, bad.Score = 3, 5
	if _, err := s.LogProductivity(bad); err == nil {
		t.Error("score 5 accepted")
	}
}
