// Package rankings shows weekday and hour rankings as tables.
package rankings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/slotscore/internal/analytics"
)

type Model struct {
	weekdays table.Model
	hours    table.Model
	empty    bool
}

func New() Model {
	return Model{
		weekdays: newTable("Weekday", 12),
		hours:    newTable("Hour", 8),
		empty:    true,
	}
}

func newTable(title string, width int) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Nothing is selectable, so don't highlight a row
	styles.Selected = lipgloss.NewStyle()

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: title, Width: width},
			{Title: "Avg", Width: 6},
			{Title: "Slots", Width: 6},
		}),
		table.WithStyles(styles),
	)
}

// SetPatterns fills both tables. The hour table is cut to height rows.
func (m *Model) SetPatterns(p analytics.TimePatterns, height int) {
	m.empty = len(p.HourRanking) == 0

	dayRows := make([]table.Row, len(p.WeekdayRanking))
	for i, d := range p.WeekdayRanking {
		dayRows[i] = table.Row{fmt.Sprint(i + 1), d.Label, fmt.Sprintf("%.2f", d.Avg), fmt.Sprint(d.Count)}
	}
	m.weekdays.SetRows(dayRows)
	m.weekdays.SetHeight(len(dayRows) + 1)

	hourRows := make([]table.Row, len(p.HourRanking))
	for i, h := range p.HourRanking {
		hourRows[i] = table.Row{fmt.Sprint(i + 1), h.Label, fmt.Sprintf("%.2f", h.Avg), fmt.Sprint(h.Count)}
	}
	m.hours.SetRows(hourRows)
	m.hours.SetHeight(max(2, min(len(hourRows)+1, height)))
}

func (m Model) Empty() bool {
	return m.empty
}

func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.weekdays.View(),
		"    ",
		m.hours.View(),
	)
}
