package insights

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/notifier"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/storage/jsonstore"
)

// Friday 2026-10-16. The current week started on Saturday 2026-10-10.
var today = time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

func setupTest(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := jsonstore.NewStore(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	svc, err := service.New(store, service.Options{
		Timezone: "UTC",
		Notifier: notifier.New(false),
		Now:      func() time.Time { return today.Add(15 * time.Hour) },
	})
	if err != nil {
		t.Fatalf("service.New failed: %v", err)
	}
	var out bytes.Buffer
	return &cli.Context{Store: store, Service: svc, Config: config.Default(t.TempDir()), Out: &out}, &out
}

// seed logs a small history: three days this week and one the week before.
func seed(t *testing.T, ctx *cli.Context) {
	t.Helper()
	daily := 10
	if _, err := ctx.Service.UpdateGoals(&daily, nil, nil); err != nil {
		t.Fatalf("UpdateGoals failed: %v", err)
	}
	entries := []struct {
		daysAgo int
		slot    int
		score   int
	}{
		{0, 18, 4}, {0, 19, 4}, {0, 20, 3},
		{1, 18, 4}, {1, 19, 3}, {1, 28, 3},
		{2, 30, 1},
		{8, 18, 2}, {8, 19, 2},
	}
	for _, e := range entries {
		date := today.AddDate(0, 0, -e.daysAgo)
		if _, err := ctx.Service.LogSlot(date, e.slot, e.score, "Work", ""); err != nil {
			t.Fatalf("LogSlot failed: %v", err)
		}
	}
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsCmd(t *testing.T) {
	ctx, out := setupTest(t)
	if err := (&StatsCmd{Period: "week"}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	assertContains(t, out.String(), "Stats for week (2026-10-10 to 2026-10-16)", "No slots logged in this period.")

	seed(t, ctx)
	out.Reset()
	if err := (&StatsCmd{Period: "week"}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	assertContains(t, out.String(),
		"Total score:     22",
		"Slots logged:    7",
		"Days tracked:    3",
		"Current streak:  2 days",
	)

	out.Reset()
	ctx.JSON = true
	if err := (&StatsCmd{Period: "all"}).Run(ctx); err != nil {
		t.Fatalf("stats --json failed: %v", err)
	}
	var summary analytics.StatsSummary
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.TotalScore != 26 || summary.TotalEntries != 9 {
		t.Errorf("all-time summary = %+v", summary)
	}
}

func TestStreakCmd(t *testing.T) {
	ctx, out := setupTest(t)
	seed(t, ctx)
	if err := (&StreakCmd{}).Run(ctx); err != nil {
		t.Fatalf("streak failed: %v", err)
	}
	assertContains(t, out.String(), "Current streak:  2 days 🔥", "Longest streak:  2 days", "Full goal days:  2 (goal 10)")
}

func TestCompareCmd(t *testing.T) {
	ctx, out := setupTest(t)
	seed(t, ctx)
	if err := (&CompareCmd{Period: "week"}).Run(ctx); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	assertContains(t, out.String(), "This week (2026-10-10 to 2026-10-16) vs previous (2026-10-03 to 2026-10-09)")
	assertContains(t, out.String(), "Total score", "22", "4")

	if err := (&CompareCmd{Period: "all"}).Run(ctx); err == nil {
		t.Error("compare should reject the all period")
	}
}

func TestTrendCmd(t *testing.T) {
	ctx, out := setupTest(t)
	seed(t, ctx)
	if err := (&TrendCmd{Period: "month"}).Run(ctx); err != nil {
		t.Fatalf("trend failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 days in trend, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "2026-10-08") {
		t.Errorf("trend should be oldest first: %q", lines[0])
	}
}

func TestPatternsAndHeatmap(t *testing.T) {
	ctx, out := setupTest(t)
	if err := (&PatternsCmd{Period: "all"}).Run(ctx); err != nil {
		t.Fatalf("patterns failed: %v", err)
	}
	assertContains(t, out.String(), "No slots logged in this period.")

	seed(t, ctx)
	out.Reset()
	if err := (&PatternsCmd{Period: "all"}).Run(ctx); err != nil {
		t.Fatalf("patterns failed: %v", err)
	}
	assertContains(t, out.String(), "Weekdays by average score:", "Peak hours:", "09:00")

	out.Reset()
	if err := (&HeatmapCmd{Period: "all"}).Run(ctx); err != nil {
		t.Fatalf("heatmap failed: %v", err)
	}
	rows := strings.Count(out.String(), "\n")
	out.Reset()
	if err := (&HeatmapCmd{Period: "all", Empty: true}).Run(ctx); err != nil {
		t.Fatalf("heatmap --empty failed: %v", err)
	}
	if full := strings.Count(out.String(), "\n"); full <= rows {
		t.Errorf("--empty should print more rows (%d vs %d)", full, rows)
	}
}

func TestDistributionCmd(t *testing.T) {
	ctx, out := setupTest(t)
	seed(t, ctx)
	if err := (&DistributionCmd{Period: "all"}).Run(ctx); err != nil {
		t.Fatalf("distribution failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected one line per score, got %d", len(lines))
	}
	// Three of nine slots scored 4
	if !strings.Contains(lines[4], "Peak Performance") || !strings.Contains(lines[4], "3 (33.3%)") {
		t.Errorf("score 4 line = %q", lines[4])
	}
}

func TestReportCmd(t *testing.T) {
	ctx, out := setupTest(t)
	seed(t, ctx)
	if err := (&ReportCmd{Period: "week"}).Run(ctx); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	assertContains(t, out.String(),
		"Week report (2026-10-10 to 2026-10-16)",
		"Total score:       22 over 7 slots",
		"Full goal days:    2",
		"Top category:      Work",
		"Categories:",
	)

	out.Reset()
	ctx.JSON = true
	if err := (&ReportCmd{Period: "week"}).Run(ctx); err != nil {
		t.Fatalf("report --json failed: %v", err)
	}
	var decoded struct {
		HasData    bool `json:"has_data"`
		Categories []struct {
			Category string `json:"category"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !decoded.HasData || len(decoded.Categories) != 1 {
		t.Errorf("unexpected report JSON: %+v", decoded)
	}
}

func TestRecommendCmd(t *testing.T) {
	ctx, out := setupTest(t)
	if err := (&RecommendCmd{}).Run(ctx); err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	assertContains(t, out.String(), "🚀 Start your journey!")

	seed(t, ctx)
	out.Reset()
	ctx.Config.Display.Recommendations = 1
	if err := (&RecommendCmd{}).Run(ctx); err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if n := strings.Count(out.String(), "\n   "); n != 1 {
		t.Errorf("config limit ignored, printed %d tips:\n%s", n, out.String())
	}

	out.Reset()
	if err := (&RecommendCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("recommend --all failed: %v", err)
	}
	if n := strings.Count(out.String(), "\n   "); n < 2 {
		t.Errorf("--all printed %d tips:\n%s", n, out.String())
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx, out := setupTest(t)
	seed(t, ctx)
	if err := (&CalendarCmd{}).Run(ctx); err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	assertContains(t, out.String(), " 15✓", " 16✓", " 14✗", "✓ achieved 2   ✗ missed 2   · vacation 12")

	if err := (&CalendarCmd{Start: "2026-10-20", End: "2026-10-01"}).Run(ctx); err == nil {
		t.Error("end before start should fail")
	}

	out.Reset()
	ctx.JSON = true
	if err := (&CalendarCmd{Start: "2026-10-14", End: "2026-10-16"}).Run(ctx); err != nil {
		t.Fatalf("calendar --json failed: %v", err)
	}
	var cal analytics.Calendar
	if err := json.Unmarshal(out.Bytes(), &cal); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(cal.Days) != 3 || cal.Days[0].Status != analytics.StatusMissed {
		t.Errorf("unexpected calendar: %+v", cal)
	}
}
