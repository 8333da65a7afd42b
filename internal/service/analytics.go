package service

import (
	"fmt"
	"time"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/utils"
)

func (s *Service) Summary(period analytics.Period) (analytics.StatsSummary, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return analytics.StatsSummary{}, err
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return analytics.StatsSummary{}, err
	}
	s.recorder.RecordComputation("summary")
	return analytics.Summary(logs, goal, s.Today()), nil
}

// Streaks is always computed over the full history.
type Streaks struct {
	Current      int `json:"current"`
	Longest      int `json:"longest"`
	FullGoalDays int `json:"full_goal_days"`
	DailyGoal    int `json:"daily_goal"`
}

func (s *Service) Streaks() (Streaks, error) {
	logs, _, err := s.periodLogs(analytics.PeriodAll)
	if err != nil {
		return Streaks{}, err
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return Streaks{}, err
	}
	totals := analytics.SummarizeByDate(logs)
	s.recorder.RecordComputation("streaks")
	return Streaks{
		Current:      analytics.CurrentStreak(totals, goal, s.Today()),
		Longest:      analytics.LongestStreak(logs, goal),
		FullGoalDays: analytics.CountFullGoalDays(totals, goal),
		DailyGoal:    goal,
	}, nil
}

type Comparison struct {
	Period   analytics.Period           `json:"period"`
	Current  analytics.Window           `json:"current"`
	Previous analytics.Window           `json:"previous"`
	Result   analytics.PeriodComparison `json:"result"`
}

// Compare measures the current week or month against the window of the same
// length right before it.
func (s *Service) Compare(period analytics.Period) (Comparison, error) {
	if period != analytics.PeriodWeek && period != analytics.PeriodMonth {
		return Comparison{}, ErrComparePeriod
	}
	cur := analytics.PeriodWindow(period, s.Today())
	prev := analytics.PreviousPeriod(cur)

	curLogs, err := s.logs(cur)
	if err != nil {
		return Comparison{}, err
	}
	prevLogs, err := s.logs(prev)
	if err != nil {
		return Comparison{}, err
	}
	s.recorder.RecordComputation("compare")
	return Comparison{
		Period:   period,
		Current:  cur,
		Previous: prev,
		Result:   analytics.ComparePeriods(curLogs, prevLogs),
	}, nil
}

func (s *Service) Patterns(period analytics.Period) (analytics.TimePatterns, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return analytics.TimePatterns{}, err
	}
	s.recorder.RecordComputation("patterns")
	return analytics.AnalyzeTimePatterns(logs), nil
}

// HeatmapView carries the matrix with its axis labels.
type HeatmapView struct {
	Rows    []string          `json:"rows"`
	Columns []string          `json:"columns"`
	Cells   analytics.Heatmap `json:"cells"`
}

func (s *Service) Heatmap(period analytics.Period) (HeatmapView, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return HeatmapView{}, err
	}
	s.recorder.RecordComputation("heatmap")
	return HeatmapView{
		Rows:    analytics.HeatmapRowLabels(),
		Columns: constants.WeekdayLabels[:],
		Cells:   analytics.SummarizeByHourAndWeekday(logs),
	}, nil
}

func (s *Service) Distribution(period analytics.Period) (analytics.ScoreDistribution, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordComputation("distribution")
	return analytics.CountScores(logs), nil
}

// Recommendations returns at most limit cards; limit <= 0 returns all of them.
func (s *Service) Recommendations(limit int) ([]analytics.Recommendation, error) {
	logs, _, err := s.periodLogs(analytics.PeriodAll)
	if err != nil {
		return nil, err
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return nil, err
	}
	recs := analytics.GenerateRecommendations(logs, goal, s.Today())
	s.recorder.RecordComputation("recommendations")
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (s *Service) Report(period analytics.Period) (analytics.PeriodReport, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return analytics.PeriodReport{}, err
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return analytics.PeriodReport{}, err
	}
	s.recorder.RecordComputation("report")
	return analytics.GeneratePeriodReport(logs, goal, string(period)), nil
}

// CalendarRange defaults to the whole current month when start or end is zero.
func (s *Service) CalendarRange(start, end time.Time) (time.Time, time.Time) {
	today := s.Today()
	if start.IsZero() {
		start = analytics.MonthWindow(today).Start
	}
	if end.IsZero() {
		end = utils.AddDays(today, analytics.DaysLeftInMonth(today))
	}
	return utils.DateOf(start), utils.DateOf(end)
}

const maxCalendarDays = 366

func (s *Service) Calendar(start, end time.Time) (analytics.Calendar, error) {
	start, end = s.CalendarRange(start, end)
	if end.Before(start) {
		return analytics.Calendar{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, utils.FormatDate(end), utils.FormatDate(start))
	}
	if utils.DaysBetween(start, end)+1 > maxCalendarDays {
		return analytics.Calendar{}, fmt.Errorf("%w: calendar is limited to %d days", ErrInvalidRange, maxCalendarDays)
	}

	logs, err := s.logs(analytics.Window{Start: start, End: end})
	if err != nil {
		return analytics.Calendar{}, err
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return analytics.Calendar{}, err
	}
	s.recorder.RecordComputation("calendar")
	return analytics.GenerateCalendarData(logs, goal, start, end, s.Today()), nil
}

func (s *Service) CategoryBreakdown(period analytics.Period) ([]analytics.CategoryStat, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordComputation("categories")
	return analytics.CategoryBreakdown(logs), nil
}

func (s *Service) Trend(period analytics.Period) ([]analytics.TrendPoint, error) {
	logs, _, err := s.periodLogs(period)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordComputation("trend")
	return analytics.DailyTrend(logs), nil
}

func (s *Service) GoalsProgress() (analytics.GoalsOverview, error) {
	today := s.Today()
	// The month window always contains the Saturday-based week except in the
	// first days of a month, so load from whichever starts earlier.
	w := analytics.MonthWindow(today)
	if week := analytics.WeekWindow(today); week.Start.Before(w.Start) {
		w.Start = week.Start
	}
	logs, err := s.logs(w)
	if err != nil {
		return analytics.GoalsOverview{}, err
	}
	goals, err := s.Goals()
	if err != nil {
		return analytics.GoalsOverview{}, err
	}
	s.recorder.RecordComputation("goals")
	return analytics.ComputeGoalsOverview(logs, goals, today), nil
}
