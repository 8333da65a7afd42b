// Package goals renders daily, weekly and monthly goal progress bars.
package goals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/slotscore/internal/analytics"
)

var (
	labelStyle   = lipgloss.NewStyle().Width(12).Bold(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	reachedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

type Model struct {
	overview analytics.GoalsOverview
	bar      progress.Model
}

func New(width int) Model {
	m := Model{bar: progress.New(progress.WithDefaultGradient())}
	m.SetWidth(width)
	return m
}

// SetWidth sizes the bars to fit next to the labels.
func (m *Model) SetWidth(width int) {
	m.bar.Width = max(10, min(width-40, 50))
}

func (m *Model) SetOverview(overview analytics.GoalsOverview) {
	m.overview = overview
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.row("Today", m.overview.Daily, false))
	b.WriteString("\n")
	b.WriteString(m.row("This week", m.overview.Weekly, true))
	b.WriteString("\n")
	b.WriteString(m.row("This month", m.overview.Monthly, true))
	return b.String()
}

func (m Model) row(label string, p analytics.Progress, showDays bool) string {
	detail := fmt.Sprintf(" %d/%d", p.Score, p.Goal)
	switch {
	case p.Reached():
		detail += reachedStyle.Render("  ✓")
	case showDays:
		detail += detailStyle.Render(fmt.Sprintf("  %d to go, %dd left", p.Remaining, p.DaysLeft))
	default:
		detail += detailStyle.Render(fmt.Sprintf("  %d to go", p.Remaining))
	}
	return labelStyle.Render(label) + m.bar.ViewAs(p.Percent/100) + detail
}
