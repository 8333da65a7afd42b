// Package service loads a user's history from storage and runs the analytics
// over it. The CLI, the HTTP API and the TUI all go through here.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/notifier"
	"github.com/julianstephens/slotscore/internal/storage"
	"github.com/julianstephens/slotscore/internal/utils"
)

// Recorder counts analytics computations. *metrics.Metrics satisfies it.
type Recorder interface {
	RecordComputation(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordComputation(string) {}

type Options struct {
	UserID   string
	Timezone string
	Notifier *notifier.Notifier
	Recorder Recorder
	// Now defaults to time.Now. Only its date in Timezone is used.
	Now func() time.Time
}

type Service struct {
	store    storage.Provider
	userID   string
	loc      *time.Location
	notifier *notifier.Notifier
	recorder Recorder
	now      func() time.Time
}

var (
	ErrComparePeriod = errors.New("compare needs a week or month period")
	ErrInvalidRange  = errors.New("invalid date range")
)

func New(store storage.Provider, opts Options) (*Service, error) {
	loc, err := utils.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", opts.Timezone, err)
	}
	s := &Service{
		store:    store,
		userID:   opts.UserID,
		loc:      loc,
		notifier: opts.Notifier,
		recorder: opts.Recorder,
		now:      opts.Now,
	}
	if s.userID == "" {
		s.userID = constants.DefaultUserID
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// ForUser returns a copy bound to another user. An empty id keeps the current one.
func (s *Service) ForUser(userID string) *Service {
	if userID == "" || userID == s.userID {
		return s
	}
	cp := *s
	cp.userID = userID
	return &cp
}

func (s *Service) UserID() string {
	return s.userID
}

func (s *Service) Store() storage.Provider {
	return s.store
}

// Now is the current wall-clock time in the configured timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Today is the current calendar date in the configured timezone.
func (s *Service) Today() time.Time {
	return utils.DateOf(s.Now())
}

func (s *Service) logs(w analytics.Window) ([]models.LogEntry, error) {
	logs, err := s.store.GetLogsByDateRange(s.userID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	return logs, nil
}

func (s *Service) periodLogs(period analytics.Period) ([]models.LogEntry, analytics.Window, error) {
	w := analytics.PeriodWindow(period, s.Today())
	logs, err := s.logs(w)
	return logs, w, err
}

func (s *Service) dailyGoal() (int, error) {
	goals, err := s.store.GetUserGoals(s.userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load goals: %w", err)
	}
	return goals.Daily, nil
}

// LogResult describes a saved slot and what it did to the day's total.
type LogResult struct {
	Entry       models.LogEntry    `json:"entry"`
	DayTotal    int                `json:"day_total"`
	Daily       analytics.Progress `json:"daily"`
	GoalReached bool               `json:"goal_reached"`
	Notified    bool               `json:"notified"`
}

// LogSlot stores a score for one slot, replacing any earlier score for it.
// Crossing today's daily goal triggers a notification when one is configured.
func (s *Service) LogSlot(date time.Time, slot, score int, category, notes string) (LogResult, error) {
	entry, err := models.NewLogEntry(s.userID, date, slot, score, category, notes)
	if err != nil {
		return LogResult{}, err
	}

	before, err := s.store.GetLogsByDate(s.userID, entry.LogDate)
	if err != nil {
		return LogResult{}, fmt.Errorf("failed to load logs: %w", err)
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return LogResult{}, err
	}

	saved, err := s.store.LogProductivity(entry)
	if err != nil {
		return LogResult{}, err
	}

	after, err := s.store.GetLogsByDate(s.userID, entry.LogDate)
	if err != nil {
		return LogResult{}, fmt.Errorf("failed to load logs: %w", err)
	}
	prevTotal, total := analytics.DailyScore(before), analytics.DailyScore(after)

	res := LogResult{
		Entry:       saved,
		DayTotal:    total,
		Daily:       analytics.GoalProgress(total, goal, 0),
		GoalReached: notifier.GoalCrossed(prevTotal, total, goal),
	}
	logger.Debug("Logged slot", "user", s.userID, "date", saved.Day(), "slot", slot, "score", score, "total", total)

	if res.GoalReached && saved.LogDate.Equal(s.Today()) {
		sent, err := s.notifier.GoalReached(prevTotal, total, goal)
		if err != nil {
			logger.Warn("Goal notification failed", "error", err)
		}
		res.Notified = sent
	}
	return res, nil
}

func (s *Service) DeleteLog(id string) error {
	return s.store.DeleteLog(s.userID, id)
}

// DayView is a single day laid out slot by slot.
type DayView struct {
	Date    time.Time                                    `json:"date"`
	Total   int                                          `json:"total"`
	Daily   analytics.Progress                           `json:"daily"`
	Slots   [constants.TotalTimeSlots]analytics.SlotCell `json:"slots"`
	Entries []models.LogEntry                            `json:"entries"`
}

func (s *Service) Day(date time.Time) (DayView, error) {
	date = utils.DateOf(date)
	logs, err := s.store.GetLogsByDate(s.userID, date)
	if err != nil {
		return DayView{}, fmt.Errorf("failed to load logs: %w", err)
	}
	goal, err := s.dailyGoal()
	if err != nil {
		return DayView{}, err
	}
	total := analytics.DailyScore(logs)
	s.recorder.RecordComputation("day")
	return DayView{
		Date:    date,
		Total:   total,
		Daily:   analytics.GoalProgress(total, goal, 0),
		Slots:   analytics.DailySlots(logs, date),
		Entries: logs,
	}, nil
}

func (s *Service) Goals() (models.Goals, error) {
	return s.store.GetUserGoals(s.userID)
}

func (s *Service) SetGoals(goals models.Goals) error {
	return s.store.SaveUserGoals(s.userID, goals)
}

// UpdateGoals overwrites only the goals that are non-nil.
func (s *Service) UpdateGoals(daily, weekly, monthly *int) (models.Goals, error) {
	goals, err := s.Goals()
	if err != nil {
		return models.Goals{}, err
	}
	if daily != nil {
		goals.Daily = *daily
	}
	if weekly != nil {
		goals.Weekly = *weekly
	}
	if monthly != nil {
		goals.Monthly = *monthly
	}
	if err := s.SetGoals(goals); err != nil {
		return models.Goals{}, err
	}
	return goals, nil
}

func (s *Service) Categories() ([]models.Category, error) {
	return s.store.GetCategories(s.userID)
}

func (s *Service) AddCategory(name, icon string) (models.Category, error) {
	c, err := models.NewCategory(name, icon)
	if err != nil {
		return models.Category{}, err
	}
	if err := s.store.AddCategory(s.userID, c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(name string) error {
	return s.store.DeleteCategory(s.userID, name)
}
