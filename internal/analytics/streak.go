package analytics

import (
	"time"

	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/utils"
)

// meetsGoal reports whether a day's total satisfies goal. A goal <= 0 is met
// by any day that has data, since totals are never negative.
func meetsGoal(total, goal int) bool {
	return total >= goal
}

// CurrentStreak counts consecutive goal-meeting days ending today, or ending
// yesterday when today is missing or still below goal. A missing date or a
// below-goal date ends the streak.
func CurrentStreak(totals DailyTotals, dailyGoal int, today time.Time) int {
	day := utils.DateOf(today)
	if total, ok := totals[day]; !ok || !meetsGoal(total, dailyGoal) {
		day = utils.AddDays(day, -1)
	}

	streak := 0
	for {
		total, ok := totals[day]
		if !ok || !meetsGoal(total, dailyGoal) {
			return streak
		}
		streak++
		day = utils.AddDays(day, -1)
	}
}

// LongestStreak returns the longest run of consecutive goal-meeting days in
// the whole history.
func LongestStreak(logs []models.LogEntry, dailyGoal int) int {
	totals := SummarizeByDate(logs)
	dates := totals.SortedDates()

	longest, current := 0, 0
	for i, day := range dates {
		if !meetsGoal(totals[day], dailyGoal) {
			current = 0
			continue
		}
		if i == 0 || utils.DaysBetween(dates[i-1], day) == 1 {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
	}
	return longest
}

// CountFullGoalDays counts dates whose total meets dailyGoal.
func CountFullGoalDays(totals DailyTotals, dailyGoal int) int {
	count := 0
	for _, total := range totals {
		if meetsGoal(total, dailyGoal) {
			count++
		}
	}
	return count
}
