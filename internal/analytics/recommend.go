package analytics

import (
	"fmt"
	"time"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/utils"
)

// Severity tells the presentation layer how to style a recommendation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Recommendation is a single tip card.
type Recommendation struct {
	Icon     string   `json:"icon"`
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// GenerateRecommendations evaluates the tip rules in a fixed order and returns
// every card that applies. Callers that truncate the list get a stable prefix.
func GenerateRecommendations(logs []models.LogEntry, dailyGoal int, today time.Time) []Recommendation {
	if len(logs) == 0 {
		return []Recommendation{{
			Icon:     "🚀",
			Title:    "Start your journey!",
			Text:     "Log your first activity today and begin tracking your productivity.",
			Severity: SeverityInfo,
		}}
	}

	recs := make([]Recommendation, 0)
	totals := SummarizeByDate(logs)
	patterns := AnalyzeTimePatterns(logs)

	if todayScore := totals[utils.DateOf(today)]; todayScore > 0 {
		progress := rawProgress(todayScore, dailyGoal)
		switch {
		case progress >= 100:
			recs = append(recs, Recommendation{
				Icon:     "🏆",
				Title:    "Well done! You reached today's goal!",
				Text:     fmt.Sprintf("You scored %d of %d points. Keep it up!", todayScore, dailyGoal),
				Severity: SeveritySuccess,
			})
		case progress >= constants.GoalNearPercent:
			recs = append(recs, Recommendation{
				Icon:     "💪",
				Title:    fmt.Sprintf("Almost there! %.0f%% of your daily goal", progress),
				Text:     fmt.Sprintf("You need only %d more points.", dailyGoal-todayScore),
				Severity: SeverityWarning,
			})
		}
	}

	if len(patterns.PeakHours) > 0 {
		best := patterns.PeakHours[0]
		recs = append(recs, Recommendation{
			Icon:     "⏰",
			Title:    fmt.Sprintf("Your best time: %s", best.Label),
			Text:     fmt.Sprintf("Your average in this hour is %.1f/4. Try scheduling important work here.", best.Avg),
			Severity: SeverityInfo,
		})
	}

	if n := len(patterns.LowHours); n > 0 {
		worst := patterns.LowHours[n-1]
		if worst.Avg < constants.LowHourAvgThreshold {
			recs = append(recs, Recommendation{
				Icon:     "📉",
				Title:    fmt.Sprintf("Room to improve: %s", worst.Label),
				Text:     fmt.Sprintf("Your average is %.1f/4. Try a short break or a change of activity.", worst.Avg),
				Severity: SeverityWarning,
			})
		}
	}

	if days := patterns.WeekdayRanking; len(days) > 1 {
		best, worst := days[0], days[len(days)-1]
		if best.Avg > worst.Avg {
			recs = append(recs, Recommendation{
				Icon:  "📅",
				Title: fmt.Sprintf("Your strongest day: %s", best.Label),
				Text: fmt.Sprintf("You perform better on %s (%.1f) than on %s (%.1f). Repeat that routine!",
					best.Label, best.Avg, worst.Label, worst.Avg),
				Severity: SeverityInfo,
			})
		}
	}

	highPct := HighPerformancePct(logs)
	switch {
	case highPct >= constants.HighPerformanceGood:
		recs = append(recs, Recommendation{
			Icon:     "🌟",
			Title:    fmt.Sprintf("%.0f%% of your slots are highly productive!", highPct),
			Text:     "You are performing excellently. Keep this level up.",
			Severity: SeveritySuccess,
		})
	case highPct < constants.HighPerformanceLow:
		recs = append(recs, Recommendation{
			Icon:     "💡",
			Title:    "A tip to boost productivity",
			Text:     "Try the Pomodoro technique: 25 minutes of work followed by a 5 minute break.",
			Severity: SeverityInfo,
		})
	}

	return recs
}
