package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/slotscore/internal/analytics"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	docStyle   = lipgloss.NewStyle().Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginBottom(1)
)

var calendarStyles = map[analytics.DayStatus]lipgloss.Style{
	analytics.StatusAchieved: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")),
	analytics.StatusMissed:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")),
	analytics.StatusVacation: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")),
	analytics.StatusFuture:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

var severityStyles = map[analytics.Severity]lipgloss.Style{
	analytics.SeveritySuccess: successStyle,
	analytics.SeverityWarning: warningStyle,
	analytics.SeverityInfo:    lipgloss.NewStyle().Bold(true),
}
