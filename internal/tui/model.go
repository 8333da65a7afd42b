package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/service"
	"github.com/julianstephens/slotscore/internal/tui/components/goals"
	"github.com/julianstephens/slotscore/internal/tui/components/rankings"
	"github.com/julianstephens/slotscore/internal/utils"
)

type Tab int

const (
	TabOverview Tab = iota
	TabPatterns
	TabCalendar
	TabReport
	TabTips
)

var tabTitles = []string{"Overview", "Patterns", "Calendar", "Report", "Tips"}

var periods = []analytics.Period{analytics.PeriodWeek, analytics.PeriodMonth, analytics.PeriodAll}

type Options struct {
	// Recommendations caps the tips shown. Zero uses the default and a
	// negative value shows every tip.
	Recommendations int
}

// snapshot is everything the tabs render, loaded in one pass.
type snapshot struct {
	summary  analytics.StatsSummary
	goals    analytics.GoalsOverview
	streaks  service.Streaks
	day      service.DayView
	patterns analytics.TimePatterns
	calendar analytics.Calendar
	report   analytics.PeriodReport
	tips     []analytics.Recommendation
}

type dataMsg struct {
	data snapshot
	err  error
}

type loggedMsg struct {
	result service.LogResult
	err    error
}

type Model struct {
	svc      *service.Service
	opts     Options
	tab      Tab
	period   int
	keys     KeyMap
	help     help.Model
	goals    goals.Model
	rankings rankings.Model
	data     snapshot
	loaded   bool
	err      error
	status   string
	form     *huh.Form
	logForm  *LogFormModel
	quitting bool
	width    int
	height   int
}

func NewModel(svc *service.Service, opts Options) Model {
	if opts.Recommendations == 0 {
		opts.Recommendations = constants.DefaultRecommendLim
	}
	return Model{
		svc:      svc,
		opts:     opts,
		tab:      TabOverview,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		goals:    goals.New(80),
		rankings: rankings.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Log, m.keys.Reload}
	if m.tab == TabPatterns || m.tab == TabReport {
		keys = append(keys, m.keys.Period)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Period() analytics.Period {
	return periods[m.period]
}

// load computes every tab's data off the update loop.
func (m Model) load() tea.Cmd {
	svc, period, limit := m.svc, m.Period(), m.opts.Recommendations
	return func() tea.Msg {
		var (
			data snapshot
			err  error
		)
		if data.summary, err = svc.Summary(analytics.PeriodAll); err != nil {
			return dataMsg{err: err}
		}
		if data.goals, err = svc.GoalsProgress(); err != nil {
			return dataMsg{err: err}
		}
		if data.streaks, err = svc.Streaks(); err != nil {
			return dataMsg{err: err}
		}
		if data.day, err = svc.Day(svc.Today()); err != nil {
			return dataMsg{err: err}
		}
		if data.patterns, err = svc.Patterns(period); err != nil {
			return dataMsg{err: err}
		}
		if data.report, err = svc.Report(period); err != nil {
			return dataMsg{err: err}
		}
		if data.calendar, err = svc.Calendar(svc.CalendarRange(data.day.Date, data.day.Date)); err != nil {
			return dataMsg{err: err}
		}
		if data.tips, err = svc.Recommendations(limit); err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{data: data}
	}
}

// saveLog stores the submitted form.
func (m Model) saveLog(fm LogFormModel) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		date, err := parseFormDate(fm.Date)
		if err != nil {
			return loggedMsg{err: err}
		}
		res, err := svc.LogSlot(date, fm.Slot, fm.Score, fm.Category, fm.Notes)
		return loggedMsg{result: res, err: err}
	}
}

func parseFormDate(value string) (time.Time, error) {
	return utils.ParseDate(strings.TrimSpace(value))
}
