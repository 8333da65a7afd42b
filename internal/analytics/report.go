package analytics

import (
	"time"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
)

// PeriodReport bundles every statistic for one period. When HasData is false
// the remaining fields are zero and must not be read.
type PeriodReport struct {
	HasData            bool              `json:"has_data"`
	PeriodName         string            `json:"period_name,omitempty"`
	TotalScore         int               `json:"total_score"`
	TotalEntries       int               `json:"total_entries"`
	DaysTracked        int               `json:"days_tracked"`
	DailyAvg           float64           `json:"daily_avg"`
	FullGoalDays       int               `json:"full_goal_days"`
	LongestStreak      int               `json:"longest_streak"`
	BestDay            *WeekdayRank      `json:"best_day"`
	PeakHour           *HourRank         `json:"peak_hour"`
	TopCategory        string            `json:"top_category"`
	ScoreDistribution  ScoreDistribution `json:"score_distribution"`
	HighPerformancePct float64           `json:"high_performance_pct"`
}

// GeneratePeriodReport summarizes logs for a named period.
func GeneratePeriodReport(logs []models.LogEntry, dailyGoal int, periodName string) PeriodReport {
	if len(logs) == 0 {
		return PeriodReport{HasData: false}
	}

	totals := SummarizeByDate(logs)
	patterns := AnalyzeTimePatterns(logs)
	totalScore := DailyScore(logs)

	report := PeriodReport{
		HasData:            true,
		PeriodName:         periodName,
		TotalScore:         totalScore,
		TotalEntries:       len(logs),
		DaysTracked:        len(totals),
		DailyAvg:           round1(Bucket{Total: totalScore, Count: len(totals)}.Avg()),
		FullGoalDays:       CountFullGoalDays(totals, dailyGoal),
		LongestStreak:      LongestStreak(logs, dailyGoal),
		TopCategory:        TopCategory(logs),
		ScoreDistribution:  CountScores(logs),
		HighPerformancePct: round1(HighPerformancePct(logs)),
	}
	if len(patterns.WeekdayRanking) > 0 {
		best := patterns.WeekdayRanking[0]
		report.BestDay = &best
	}
	if len(patterns.PeakHours) > 0 {
		peak := patterns.PeakHours[0]
		report.PeakHour = &peak
	}
	return report
}

// TopCategory returns the most frequently logged category. The first
// category to reach the highest count wins a tie.
func TopCategory(logs []models.LogEntry) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, log := range logs {
		cat := categoryOf(log)
		if _, ok := counts[cat]; !ok {
			order = append(order, cat)
		}
		counts[cat]++
	}

	top, best := constants.DefaultCategory, 0
	for _, cat := range order {
		if counts[cat] > best {
			top, best = cat, counts[cat]
		}
	}
	return top
}

// StatsSummary is the headline block shown on the overview.
type StatsSummary struct {
	TotalScore    int       `json:"total_score"`
	TotalEntries  int       `json:"total_entries"`
	AvgScore      float64   `json:"avg_score"`
	DaysTracked   int       `json:"days_tracked"`
	BestHour      int       `json:"best_hour"`
	BestHourLabel string    `json:"best_hour_label"`
	BestHourAvg   float64   `json:"best_hour_avg"`
	BestWeekday   string    `json:"best_weekday"`
	BestDayAvg    float64   `json:"best_weekday_avg"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	AsOf          time.Time `json:"as_of"`
}

// Summary computes the overview block. Empty input gives a zero summary
// whose labels still point at hour 0 and Monday.
func Summary(logs []models.LogEntry, dailyGoal int, today time.Time) StatsSummary {
	totals := SummarizeByDate(logs)
	hour, hourAvg := BestHour(logs)
	day, dayAvg := BestWeekday(logs)
	total := DailyScore(logs)

	return StatsSummary{
		TotalScore:    total,
		TotalEntries:  len(logs),
		AvgScore:      round2(Bucket{Total: total, Count: len(logs)}.Avg()),
		DaysTracked:   len(totals),
		BestHour:      hour,
		BestHourLabel: HourLabel(hour),
		BestHourAvg:   round2(hourAvg),
		BestWeekday:   day,
		BestDayAvg:    round2(dayAvg),
		CurrentStreak: CurrentStreak(totals, dailyGoal, today),
		LongestStreak: LongestStreak(logs, dailyGoal),
		AsOf:          today,
	}
}
