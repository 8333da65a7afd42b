package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/utils"
)

// chrome is the rows taken by the tabs, status line and help.
const chrome = 12

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.goals.SetWidth(msg.Width)
		m.rankings.SetPatterns(m.data.patterns, msg.Height-chrome)

	case dataMsg:
		m.err = msg.err
		if msg.err == nil {
			m.data = msg.data
			m.loaded = true
			m.goals.SetOverview(msg.data.goals)
			m.rankings.SetPatterns(msg.data.patterns, m.tableHeight())
		}

	case loggedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("✓ Logged %s on %s: %d (day total %d)",
			utils.SlotLabel(msg.result.Entry.TimeSlot), msg.result.Entry.Day(), msg.result.Entry.Score, msg.result.DayTotal)
		if msg.result.GoalReached {
			m.status += "  🎉 Daily goal reached!"
		}
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % Tab(len(tabTitles))
		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab - 1 + Tab(len(tabTitles))) % Tab(len(tabTitles))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Reload):
			m.status = ""
			return m, m.load()
		case key.Matches(msg, m.keys.Period):
			m.period = (m.period + 1) % len(periods)
			return m, m.load()
		case key.Matches(msg, m.keys.Log):
			return m.openForm()
		}
	}

	return m, nil
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	categories, err := m.svc.Categories()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.logForm = NewLogFormModel(m.svc.Today(), utils.SlotAt(m.svc.Now()))
	m.form = NewLogForm(m.logForm, categories)
	m.status = ""
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.form, m.logForm = nil, nil
		m.status = "Logging cancelled"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		submitted := *m.logForm
		m.form, m.logForm = nil, nil
		return m, m.saveLog(submitted)
	case huh.StateAborted:
		m.form, m.logForm = nil, nil
		m.status = "Logging cancelled"
		return m, nil
	}
	return m, cmd
}

func (m Model) tableHeight() int {
	if m.height == 0 {
		return 25
	}
	return m.height - chrome
}

func (m Model) periodName() string {
	if m.Period() == analytics.PeriodAll {
		return "all time"
	}
	return "this " + string(m.Period())
}
