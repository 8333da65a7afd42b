package analytics

import (
	"time"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/utils"
)

// DayStatus classifies a calendar day against the daily goal.
type DayStatus string

const (
	StatusFuture   DayStatus = "future"
	StatusVacation DayStatus = "vacation"
	StatusAchieved DayStatus = "achieved"
	StatusMissed   DayStatus = "missed"
)

// CalendarDay is one cell of the calendar view. Difference is Score minus the
// daily goal and only carries meaning for achieved and missed days.
type CalendarDay struct {
	Date       time.Time `json:"date"`
	DayName    string    `json:"day_name"`
	DayNumber  int       `json:"day_number"`
	Status     DayStatus `json:"status"`
	Score      int       `json:"score"`
	Difference int       `json:"difference"`
}

// CalendarStats counts past and present days by status.
type CalendarStats struct {
	Achieved int `json:"achieved"`
	Missed   int `json:"missed"`
	Vacation int `json:"vacation"`
}

// Calendar is the day-by-day view for a date range.
type Calendar struct {
	Days  []CalendarDay `json:"days"`
	Stats CalendarStats `json:"stats"`
}

// GenerateCalendarData builds one CalendarDay per date in [start, end].
// A day whose entries sum to zero is a vacation day, same as a day with no
// entries. An end before start yields an empty calendar.
func GenerateCalendarData(logs []models.LogEntry, dailyGoal int, start, end, today time.Time) Calendar {
	start, end, today = utils.DateOf(start), utils.DateOf(end), utils.DateOf(today)
	totals := SummarizeByDate(logs)

	cal := Calendar{Days: make([]CalendarDay, 0)}
	for day := start; !day.After(end); day = utils.AddDays(day, 1) {
		score := totals[day]
		entry := CalendarDay{
			Date:       day,
			DayName:    constants.WeekdayLabels[utils.MondayIndex(day)],
			DayNumber:  day.Day(),
			Score:      score,
			Difference: score - dailyGoal,
		}

		switch {
		case day.After(today):
			entry.Status = StatusFuture
		case score == 0:
			entry.Status = StatusVacation
			cal.Stats.Vacation++
		case meetsGoal(score, dailyGoal):
			entry.Status = StatusAchieved
			cal.Stats.Achieved++
		default:
			entry.Status = StatusMissed
			cal.Stats.Missed++
		}
		cal.Days = append(cal.Days, entry)
	}
	return cal
}
