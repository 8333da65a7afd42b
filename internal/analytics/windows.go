package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/utils"
)

// Period names a reporting window.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// allTimeStart is the first date covered by PeriodAll.
var allTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParsePeriod accepts week, month or all (case-insensitive). Empty means all.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period %q (expected week, month or all)", s)
	}
}

// Window is an inclusive date range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days is the number of calendar days the window covers.
func (w Window) Days() int {
	return utils.DaysBetween(w.Start, w.End) + 1
}

// Contains reports whether day falls inside the window.
func (w Window) Contains(day time.Time) bool {
	day = utils.DateOf(day)
	return !day.Before(w.Start) && !day.After(w.End)
}

// DaysSinceSaturday is the offset of today into a Saturday-based week.
func DaysSinceSaturday(today time.Time) int {
	return (utils.MondayIndex(today) + 2) % 7
}

// WeekWindow runs from the most recent Saturday through today.
func WeekWindow(today time.Time) Window {
	today = utils.DateOf(today)
	return Window{Start: utils.AddDays(today, -DaysSinceSaturday(today)), End: today}
}

// MonthWindow runs from the first of today's month through today.
func MonthWindow(today time.Time) Window {
	today = utils.DateOf(today)
	return Window{Start: today.AddDate(0, 0, 1-today.Day()), End: today}
}

// PeriodWindow resolves a period name relative to today.
func PeriodWindow(period Period, today time.Time) Window {
	switch period {
	case PeriodWeek:
		return WeekWindow(today)
	case PeriodMonth:
		return MonthWindow(today)
	default:
		return Window{Start: allTimeStart, End: utils.DateOf(today)}
	}
}

// PreviousPeriod is the window of equal length that ends the day before w starts.
func PreviousPeriod(w Window) Window {
	end := utils.AddDays(w.Start, -1)
	return Window{Start: utils.AddDays(end, -utils.DaysBetween(w.Start, w.End)), End: end}
}

// DaysLeftInWeek counts the days after today until the week ends on Friday.
func DaysLeftInWeek(today time.Time) int {
	return 6 - DaysSinceSaturday(today)
}

// DaysLeftInMonth counts the days after today until the month ends.
func DaysLeftInMonth(today time.Time) int {
	today = utils.DateOf(today)
	last := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Day() - today.Day()
}

// Progress tracks a score against one goal.
type Progress struct {
	Score     int     `json:"score"`
	Goal      int     `json:"goal"`
	Percent   float64 `json:"percent"`
	Remaining int     `json:"remaining"`
	DaysLeft  int     `json:"days_left"`
}

// Reached reports whether the goal has been met.
func (p Progress) Reached() bool {
	return p.Goal > 0 && p.Score >= p.Goal
}

// GoalProgress compares score with goal.
func GoalProgress(score, goal, daysLeft int) Progress {
	return Progress{
		Score:     score,
		Goal:      goal,
		Percent:   ProgressPercentage(score, goal),
		Remaining: max(0, goal-score),
		DaysLeft:  daysLeft,
	}
}

// GoalsOverview holds progress for the day, the current week and the current month.
type GoalsOverview struct {
	Daily   Progress `json:"daily"`
	Weekly  Progress `json:"weekly"`
	Monthly Progress `json:"monthly"`
}

// ComputeGoalsOverview measures logs against all three goals. logs must cover
// at least the current month; entries outside each window are ignored.
func ComputeGoalsOverview(logs []models.LogEntry, goals models.Goals, today time.Time) GoalsOverview {
	today = utils.DateOf(today)
	totals := SummarizeByDate(logs)
	week, month := WeekWindow(today), MonthWindow(today)

	weekScore, monthScore := 0, 0
	for day, total := range totals {
		if week.Contains(day) {
			weekScore += total
		}
		if month.Contains(day) {
			monthScore += total
		}
	}

	return GoalsOverview{
		Daily:   GoalProgress(totals[today], goals.Daily, 0),
		Weekly:  GoalProgress(weekScore, goals.Weekly, DaysLeftInWeek(today)),
		Monthly: GoalProgress(monthScore, goals.Monthly, DaysLeftInMonth(today)),
	}
}

// FilterWindow returns the logs whose date falls inside w.
func FilterWindow(logs []models.LogEntry, w Window) []models.LogEntry {
	out := make([]models.LogEntry, 0, len(logs))
	for _, log := range logs {
		if w.Contains(log.LogDate) {
			out = append(out, log)
		}
	}
	return out
}

// ScoreLevel returns the display level for a slot score, clamped to 0-4.
func ScoreLevel(score int) constants.ScoreLevel {
	score = max(constants.MinSlotScore, min(score, constants.MaxSlotScore))
	return constants.ScoreLevels[score]
}
