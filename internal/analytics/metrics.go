package analytics

import (
	"sort"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
)

// DailyScore sums the scores of logs. Empty input is 0.
func DailyScore(logs []models.LogEntry) int {
	total := 0
	for _, log := range logs {
		total += log.Score
	}
	return total
}

// MaxDailyScore is the best achievable total for the given number of slots.
func MaxDailyScore(slotsLogged int) int {
	return slotsLogged * constants.MaxSlotScore
}

// MaxFullDayScore is MaxDailyScore for every slot of a day.
func MaxFullDayScore() int {
	return MaxDailyScore(constants.TotalTimeSlots)
}

// ProgressPercentage returns current/goal as a percentage clamped to 100.
// A goal <= 0 yields 0.
func ProgressPercentage(current, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return min(rawProgress(current, goal), 100)
}

func rawProgress(current, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(current) / float64(goal) * 100
}

// CategoryStat aggregates entries sharing a category.
type CategoryStat struct {
	Category   string  `json:"category"`
	TotalScore int     `json:"total_score"`
	Count      int     `json:"count"`
	AvgScore   float64 `json:"avg_score"`
}

// CategoryBreakdown groups logs by category, highest total first.
// Categories with equal totals keep the order they were first seen in.
func CategoryBreakdown(logs []models.LogEntry) []CategoryStat {
	stats := make([]CategoryStat, 0)
	index := make(map[string]int)
	for _, log := range logs {
		cat := categoryOf(log)
		i, ok := index[cat]
		if !ok {
			i = len(stats)
			index[cat] = i
			stats = append(stats, CategoryStat{Category: cat})
		}
		stats[i].TotalScore += log.Score
		stats[i].Count++
	}

	for i := range stats {
		stats[i].AvgScore = Bucket{Total: stats[i].TotalScore, Count: stats[i].Count}.Avg()
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalScore > stats[j].TotalScore
	})
	return stats
}

// BestHour returns the hour with the highest average score. On ties the
// lowest hour wins. Empty input returns (0, 0).
func BestHour(logs []models.LogEntry) (int, float64) {
	buckets := hourBuckets(logs)
	bestHour, bestAvg, found := 0, 0.0, false
	for hour, b := range buckets {
		if b.Count == 0 {
			continue
		}
		if avg := b.Avg(); !found || avg > bestAvg {
			bestHour, bestAvg, found = hour, avg, true
		}
	}
	return bestHour, bestAvg
}

// BestWeekday returns the weekday label with the highest average score.
// On ties the earliest weekday (Monday first) wins. Empty input returns
// (Monday, 0).
func BestWeekday(logs []models.LogEntry) (string, float64) {
	buckets := weekdayBuckets(logs)
	bestDay, bestAvg, found := 0, 0.0, false
	for day, b := range buckets {
		if b.Count == 0 {
			continue
		}
		if avg := b.Avg(); !found || avg > bestAvg {
			bestDay, bestAvg, found = day, avg, true
		}
	}
	return constants.WeekdayLabels[bestDay], bestAvg
}

func categoryOf(log models.LogEntry) string {
	if log.Category == "" {
		return constants.DefaultCategory
	}
	return log.Category
}
