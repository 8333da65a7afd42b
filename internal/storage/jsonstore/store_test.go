package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestProviderContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Provider {
		return newTestStore(t)
	})
}

func TestLoad_NotInitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load() = %v, want ErrNotInitialized", err)
	}
}

func TestUserIDCannotEscapeDirectory(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"", "..", "../evil", "a/b", `a\b`, ".hidden"} {
		t.Run(id, func(t *testing.T) {
			if _, err := s.GetLogsByDate(id, day); !errors.Is(err, ErrInvalidUserID) {
				t.Errorf("GetLogsByDate(%q) error = %v, want ErrInvalidUserID", id, err)
			}
		})
	}
}

func TestReopenReadsFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	entry, err := models.NewLogEntry("local", day, 18, 3, "Work", "standup")
	if err != nil {
		t.Fatalf("NewLogEntry failed: %v", err)
	}
	saved, err := s.LogProductivity(entry)
	if err != nil {
		t.Fatalf("LogProductivity failed: %v", err)
	}
	if err := s.SaveUserGoals("local", models.Goals{Daily: 80, Weekly: 400, Monthly: 1600}); err != nil {
		t.Fatalf("SaveUserGoals failed: %v", err)
	}
	s.Close()

	for _, name := range []string{logsFile, profileFile} {
		if _, err := os.Stat(filepath.Join(dir, "local", name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	raw, err := os.ReadFile(filepath.Join(dir, "local", logsFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"log_date": "2026-10-16"`) {
		t.Errorf("log_date not stored as a plain date:\n%s", raw)
	}

	reopened := NewStore(dir)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.GetLogBySlot("local", day, 18)
	if err != nil {
		t.Fatalf("GetLogBySlot failed: %v", err)
	}
	if got.ID != saved.ID || got.Notes != "standup" || got.Score != 3 {
		t.Errorf("reloaded entry = %+v, want %+v", got, saved)
	}
	goals, err := reopened.GetUserGoals("local")
	if err != nil {
		t.Fatalf("GetUserGoals failed: %v", err)
	}
	if goals.Daily != 80 {
		t.Errorf("reloaded daily goal = %d, want 80", goals.Daily)
	}
}

func TestCorruptFile(t *testing.T) {
	for _, name := range []string{logsFile, profileFile, categoriesFile, hiddenFile} {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			writeUserFile(t, s.dir, "local", name, "{not json")
			if _, err := s.GetUserGoals("local"); err == nil {
				t.Errorf("expected parse error for corrupt %s", name)
			}
		})
	}
}

func writeUserFile(t *testing.T, dir, userID, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, userID), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, userID, name), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestFailedSaveKeepsCachedState(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

	first, err := models.NewLogEntry("local", day, 18, 3, "Work", "")
	if err != nil {
		t.Fatal(err)
	}
	saved, err := s.LogProductivity(first)
	if err != nil {
		t.Fatalf("LogProductivity failed: %v", err)
	}

	// A regular file where the user directory should be makes every write fail.
	userDir := filepath.Join(s.dir, "local")
	if err := os.RemoveAll(userDir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(userDir, []byte("blocked"), 0600); err != nil {
		t.Fatal(err)
	}

	second, err := models.NewLogEntry("local", day, 19, 4, "Work", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LogProductivity(second); err == nil {
		t.Error("LogProductivity should fail when the user directory is unwritable")
	}
	overwrite := first
	overwrite.Score = 1
	if _, err := s.LogProductivity(overwrite); err == nil {
		t.Error("upsert should fail when the user directory is unwritable")
	}
	if err := s.SaveUserGoals("local", models.Goals{Daily: 10, Weekly: 50, Monthly: 200}); err == nil {
		t.Error("SaveUserGoals should fail when the user directory is unwritable")
	}
	if err := s.DeleteLog("local", saved.ID); err == nil {
		t.Error("DeleteLog should fail when the user directory is unwritable")
	}
	if err := s.DeleteCategory("local", "Work"); err == nil {
		t.Error("DeleteCategory should fail when the user directory is unwritable")
	}
	if err := s.AddCategory("local", models.Category{Name: "Reading", Icon: "📖"}); err == nil {
		t.Error("AddCategory should fail when the user directory is unwritable")
	}

	logs, err := s.GetLogsByDate("local", day)
	if err != nil {
		t.Fatalf("GetLogsByDate failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != saved.ID || logs[0].Score != 3 {
		t.Errorf("logs after failed saves = %+v, want only the original entry", logs)
	}
	goals, err := s.GetUserGoals("local")
	if err != nil {
		t.Fatalf("GetUserGoals failed: %v", err)
	}
	if goals != models.DefaultGoals() {
		t.Errorf("goals after failed save = %+v, want defaults", goals)
	}
	cats, err := s.GetCategories("local")
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(cats) != 7 || cats[0].Name != "Work" {
		t.Errorf("categories after failed saves = %v, want the seven built-ins", cats)
	}
}

const legacyLogs = `[
  {
    "id": "a1",
    "user_id": "local",
    "log_date": "2026-10-15",
    "time_slot": 9,
    "score": 4,
    "category": "Study",
    "notes": null,
    "updated_at": "2026-10-15T09:41:12.345678"
  },
  {
    "id": "a2",
    "user_id": "local",
    "log_date": "2026-10-15",
    "time_slot": 10,
    "score": 2,
    "category": "عمل",
    "notes": "ملاحظات",
    "updated_at": "2026-10-15T10:05:00"
  },
  {
    "id": "bad",
    "user_id": "local",
    "log_date": "yesterday",
    "time_slot": 3,
    "score": 1,
    "category": "Work",
    "notes": null,
    "updated_at": ""
  }
]`

const legacyProfile = `{
  "id": "local",
  "display_name": "Sam",
  "daily_goal": 30,
  "weekly_goal": 150,
  "created_at": "2026-01-01T00:00:00",
  "updated_at": "2026-01-01T00:00:00"
}`

const legacyCategories = `[
  {
    "id": "c1",
    "name": "Reading",
    "name_ar": "قراءة",
    "color": "#3b82f6",
    "icon": "📖",
    "is_default": false
  }
]`

func TestReadsExistingUserFiles(t *testing.T) {
	dir := t.TempDir()
	writeUserFile(t, dir, "local", logsFile, legacyLogs)
	writeUserFile(t, dir, "local", profileFile, legacyProfile)
	writeUserFile(t, dir, "local", categoriesFile, legacyCategories)
	writeUserFile(t, dir, "local", hiddenFile, `["Leisure"]`)

	s := NewStore(dir)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	day := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	logs, err := s.GetLogsByDate("local", day)
	if err != nil {
		t.Fatalf("GetLogsByDate failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2 (unreadable date skipped)", len(logs))
	}
	if logs[0].Notes != "" || logs[0].Category != "Study" {
		t.Errorf("first log = %+v", logs[0])
	}
	if logs[1].Notes != "ملاحظات" || logs[1].Category != "عمل" {
		t.Errorf("second log = %+v", logs[1])
	}
	wantUpdated := time.Date(2026, time.October, 15, 9, 41, 12, 345678000, time.UTC)
	if !logs[0].UpdatedAt.Equal(wantUpdated) {
		t.Errorf("UpdatedAt = %v, want %v", logs[0].UpdatedAt, wantUpdated)
	}

	goals, err := s.GetUserGoals("local")
	if err != nil {
		t.Fatalf("GetUserGoals failed: %v", err)
	}
	want := models.Goals{Daily: 30, Weekly: 150, Monthly: models.DefaultGoals().Monthly}
	if goals != want {
		t.Errorf("goals = %+v, want %+v", goals, want)
	}

	cats, err := s.GetCategories("local")
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	var names []string
	for _, c := range cats {
		names = append(names, c.Name)
	}
	if len(cats) != 7 || slices.Contains(names, "Leisure") || names[6] != "Reading" {
		t.Errorf("categories = %v, want six built-ins without Leisure plus Reading", names)
	}

	// Rewrites keep fields this package does not model.
	if err := s.AddCategory("local", models.Category{Name: "Music", Icon: "🎵"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if err := s.SaveUserGoals("local", models.Goals{Daily: 35, Weekly: 150, Monthly: 600}); err != nil {
		t.Fatalf("SaveUserGoals failed: %v", err)
	}
	entry, err := models.NewLogEntry("local", day, 11, 3, "Work", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LogProductivity(entry); err != nil {
		t.Fatalf("LogProductivity failed: %v", err)
	}

	for name, fragment := range map[string]string{
		categoriesFile: `"name_ar": "قراءة"`,
		profileFile:    `"display_name": "Sam"`,
		logsFile:       `"log_date": "yesterday"`,
	} {
		raw, err := os.ReadFile(filepath.Join(dir, "local", name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(raw), fragment) {
			t.Errorf("%s lost %s after rewrite:\n%s", name, fragment, raw)
		}
	}
}

func TestDeleteCustomCategoryRemovesRecord(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddCategory("local", models.Category{Name: "Reading", Icon: "📖"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCategory("local", "Reading"); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, "local", categoriesFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "Reading") {
		t.Errorf("deleted category still on disk:\n%s", raw)
	}
}
