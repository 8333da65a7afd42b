package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return docStyle.Render(titleStyle.Render("Log a slot") + "\n" + m.form.View() + "\n" + mutedStyle.Render("esc to cancel"))
	}

	var content string
	switch {
	case m.err != nil && !m.loaded:
		content = dangerStyle.Render("Error: " + m.err.Error())
	case !m.loaded:
		content = mutedStyle.Render("Loading…")
	default:
		switch m.tab {
		case TabOverview:
			content = m.viewOverview()
		case TabPatterns:
			content = m.viewPatterns()
		case TabCalendar:
			content = m.viewCalendar()
		case TabReport:
			content = m.viewReport()
		case TabTips:
			content = m.viewTips()
		}
	}

	status := m.status
	if m.err != nil && m.loaded {
		status = dangerStyle.Render("Error: " + m.err.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if m.tab == Tab(i) {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = inactiveTabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewOverview() string {
	d := m.data
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Today, %s: %d points", utils.FormatDate(d.day.Date), d.day.Total)))
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(m.goals.View()))
	b.WriteString("\n")

	flame := ""
	if d.streaks.Current > 0 {
		flame = " 🔥"
	}
	fmt.Fprintf(&b, "Streak %d days%s   longest %d   full goal days %d\n",
		d.streaks.Current, flame, d.streaks.Longest, d.streaks.FullGoalDays)
	if d.summary.TotalEntries > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("All time: %d points over %d slots, best hour %s, best day %s",
			d.summary.TotalScore, d.summary.TotalEntries, d.summary.BestHourLabel, d.summary.BestWeekday)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(d.day.Entries) == 0 {
		b.WriteString(mutedStyle.Render("Nothing logged today. Press l to log a slot."))
		return b.String()
	}
	for _, e := range d.day.Entries {
		level := analytics.ScoreLevel(e.Score)
		fmt.Fprintf(&b, "%s  %s %d  %s\n", utils.SlotLabel(e.TimeSlot), level.Emoji, e.Score, mutedStyle.Render(e.Category))
	}
	return b.String()
}

func (m Model) viewPatterns() string {
	header := titleStyle.Render("Patterns, " + m.periodName())
	if m.rankings.Empty() {
		return header + "\n" + mutedStyle.Render("No slots logged in this period.")
	}
	return header + "\n" + m.rankings.View()
}

func (m Model) viewCalendar() string {
	cal := m.data.calendar
	if len(cal.Days) == 0 {
		return mutedStyle.Render("No days to show.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(cal.Days[0].Date.Format("January 2006")))
	b.WriteString("\n")
	for _, label := range constants.WeekdayLabels {
		fmt.Fprintf(&b, " %s ", label[:2])
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat("    ", utils.MondayIndex(cal.Days[0].Date)))
	for _, day := range cal.Days {
		b.WriteString(calendarStyles[day.Status].Render(fmt.Sprintf(" %2d ", day.DayNumber)))
		if utils.MondayIndex(day.Date) == 6 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s achieved %d  %s missed %d  %s vacation %d",
		calendarStyles[analytics.StatusAchieved].Render("  "), cal.Stats.Achieved,
		calendarStyles[analytics.StatusMissed].Render("  "), cal.Stats.Missed,
		calendarStyles[analytics.StatusVacation].Render("  "), cal.Stats.Vacation)
	return b.String()
}

func (m Model) viewReport() string {
	r := m.data.report
	var b strings.Builder
	b.WriteString(titleStyle.Render("Report, " + m.periodName()))
	b.WriteString("\n")
	if !r.HasData {
		b.WriteString(mutedStyle.Render("No slots logged in this period."))
		return b.String()
	}

	fmt.Fprintf(&b, "Total score      %d over %d slots\n", r.TotalScore, r.TotalEntries)
	fmt.Fprintf(&b, "Days tracked     %d (avg %.1f per day)\n", r.DaysTracked, r.DailyAvg)
	fmt.Fprintf(&b, "Full goal days   %d\n", r.FullGoalDays)
	fmt.Fprintf(&b, "Longest streak   %d days\n", r.LongestStreak)
	if r.BestDay != nil {
		fmt.Fprintf(&b, "Best day         %s (avg %.2f)\n", r.BestDay.Label, r.BestDay.Avg)
	}
	if r.PeakHour != nil {
		fmt.Fprintf(&b, "Peak hour        %s (avg %.2f)\n", r.PeakHour.Label, r.PeakHour.Avg)
	}
	fmt.Fprintf(&b, "Top category     %s\n", r.TopCategory)
	fmt.Fprintf(&b, "High performance %.1f%%\n\n", r.HighPerformancePct)

	for score := constants.MaxSlotScore; score >= constants.MinSlotScore; score-- {
		level := analytics.ScoreLevel(score)
		fmt.Fprintf(&b, "%s %-17s %d\n", level.Emoji, level.Name, r.ScoreDistribution[score])
	}
	return b.String()
}

func (m Model) viewTips() string {
	if len(m.data.tips) == 0 {
		return mutedStyle.Render("No tips right now.")
	}
	cards := make([]string, len(m.data.tips))
	for i, rec := range m.data.tips {
		title := severityStyles[rec.Severity].Render(rec.Icon + " " + rec.Title)
		cards[i] = cardStyle.Render(title + "\n" + rec.Text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
