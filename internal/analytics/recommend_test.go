package analytics

import (
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/slotscore/internal/models"
)

func icons(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Icon
	}
	return out
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	recs := GenerateRecommendations(nil, 100, refToday)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Icon != "🚀" || recs[0].Severity != SeverityInfo {
		t.Errorf("got %+v, want start card", recs[0])
	}
}

func TestGenerateRecommendations(t *testing.T) {
	tests := []struct {
		name  string
		logs  []models.LogEntry
		goal  int
		icons []string
	}{
		{
			name: "goal reached and strong week",
			logs: []models.LogEntry{
				entry(day(0), 16, 4), entry(day(0), 17, 4), entry(day(0), 18, 3),
				entry(day(-1), 16, 3), entry(day(-1), 40, 1),
			},
			goal: 10,
			// today 11 >= 10; peak 08:00; 3 hours ranked, worst 20:00 avg 1;
			// Friday 3.67 > Thursday 2; 4 of 5 high = 80%.
			icons: []string{"🏆", "⏰", "📉", "📅", "🌟"},
		},
		{
			name: "near goal",
			logs: []models.LogEntry{
				entry(day(0), 16, 4), entry(day(0), 17, 4),
			},
			goal: 10,
			// 8/10 = 80%; only one hour and one weekday ranked; 100% high.
			icons: []string{"💪", "⏰", "🌟"},
		},
		{
			name: "low performance history only",
			logs: []models.LogEntry{
				entry(day(-3), 10, 1), entry(day(-3), 20, 2), entry(day(-3), 30, 0),
			},
			goal: 100,
			// nothing today; worst hour 15:00 avg 0; single weekday; 0% high.
			icons: []string{"⏰", "📉", "💡"},
		},
		{
			name: "zero goal never produces a progress card",
			logs: []models.LogEntry{entry(day(0), 16, 2), entry(day(0), 18, 3)},
			goal: 0,
			// 50% high falls between the two thresholds.
			icons: []string{"⏰"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := icons(GenerateRecommendations(tt.logs, tt.goal, refToday))
			if !reflect.DeepEqual(got, tt.icons) {
				t.Errorf("icons = %v, want %v", got, tt.icons)
			}
		})
	}
}

func TestGenerateRecommendations_NearGoalText(t *testing.T) {
	logs := []models.LogEntry{entry(day(0), 16, 4), entry(day(0), 17, 4)}
	recs := GenerateRecommendations(logs, 10, refToday)
	if !strings.Contains(recs[0].Title, "80%") {
		t.Errorf("title = %q, want it to mention 80%%", recs[0].Title)
	}
	if !strings.Contains(recs[0].Text, "2 more points") {
		t.Errorf("text = %q, want remaining points", recs[0].Text)
	}
	if recs[0].Severity != SeverityWarning {
		t.Errorf("severity = %q, want warning", recs[0].Severity)
	}
}

func TestGenerateRecommendations_Idempotent(t *testing.T) {
	logs := gapLogs()
	first := GenerateRecommendations(logs, 50, refToday)
	second := GenerateRecommendations(logs, 50, refToday)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%v\n%v", first, second)
	}
}
