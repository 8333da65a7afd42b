package insights

import (
	"strings"
	"time"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/utils"
)

type ReportCmd struct {
	Period string `short:"p" default:"week" enum:"week,month,all" help:"${period_help}"`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	report, err := ctx.Service.Report(period)
	if err != nil {
		return err
	}
	breakdown, err := ctx.Service.CategoryBreakdown(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(struct {
			analytics.PeriodReport
			Categories []analytics.CategoryStat `json:"categories"`
		}{report, breakdown})
	}

	ctx.Printf("%s report (%s)\n\n", strings.ToUpper(string(period[:1]))+string(period[1:]), windowLabel(ctx, period))
	if !report.HasData {
		ctx.Println("No slots logged in this period.")
		return nil
	}

	ctx.Printf("  Total score:       %d over %d slots\n", report.TotalScore, report.TotalEntries)
	ctx.Printf("  Days tracked:      %d (avg %.1f per day)\n", report.DaysTracked, report.DailyAvg)
	ctx.Printf("  Full goal days:    %d\n", report.FullGoalDays)
	ctx.Printf("  Longest streak:    %d days\n", report.LongestStreak)
	if report.BestDay != nil {
		ctx.Printf("  Best day:          %s (avg %.2f)\n", report.BestDay.Label, report.BestDay.Avg)
	}
	if report.PeakHour != nil {
		ctx.Printf("  Peak hour:         %s (avg %.2f)\n", report.PeakHour.Label, report.PeakHour.Avg)
	}
	ctx.Printf("  Top category:      %s\n", report.TopCategory)
	ctx.Printf("  High performance:  %.1f%% of slots scored %d+\n", report.HighPerformancePct, constants.HighPerformanceMinScore)

	ctx.Println("\n  Scores:")
	for score := constants.MinSlotScore; score <= constants.MaxSlotScore; score++ {
		level := analytics.ScoreLevel(score)
		ctx.Printf("    %s %-17s %d\n", level.Emoji, level.Name, report.ScoreDistribution[score])
	}

	if len(breakdown) > 0 {
		ctx.Println("\n  Categories:")
		for _, stat := range breakdown {
			ctx.Printf("    %-16s %5d  (%d slots, avg %.2f)\n", stat.Category, stat.TotalScore, stat.Count, stat.AvgScore)
		}
	}
	return nil
}

type RecommendCmd struct {
	Limit int  `short:"n" help:"Maximum tips to show. Defaults to [display] recommendations from the config file."`
	All   bool `help:"Show every tip."`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	limit := c.Limit
	if limit <= 0 {
		limit = ctx.Config.Display.Recommendations
	}
	if c.All {
		limit = 0
	}
	recs, err := ctx.Service.Recommendations(limit)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(recs)
	}

	for i, rec := range recs {
		if i > 0 {
			ctx.Println()
		}
		ctx.Printf("%s %s\n", rec.Icon, rec.Title)
		ctx.Printf("   %s\n", rec.Text)
	}
	return nil
}

var calendarMarks = map[analytics.DayStatus]string{
	analytics.StatusAchieved: "✓",
	analytics.StatusMissed:   "✗",
	analytics.StatusVacation: "·",
	analytics.StatusFuture:   " ",
}

type CalendarCmd struct {
	Start string `help:"First day (YYYY-MM-DD). Defaults to the first of this month."`
	End   string `help:"Last day (YYYY-MM-DD). Defaults to the end of this month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	var start, end time.Time
	var err error
	if c.Start != "" {
		if start, err = ctx.ParseDate(c.Start); err != nil {
			return err
		}
	}
	if c.End != "" {
		if end, err = ctx.ParseDate(c.End); err != nil {
			return err
		}
	}

	cal, err := ctx.Service.Calendar(start, end)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(cal)
	}
	if len(cal.Days) == 0 {
		return nil
	}

	for _, label := range constants.WeekdayLabels {
		ctx.Printf(" %s  ", label[:2])
	}
	ctx.Println()

	// Pad the first week so columns line up Monday to Sunday
	ctx.Printf("%s", strings.Repeat("     ", utils.MondayIndex(cal.Days[0].Date)))
	for _, day := range cal.Days {
		ctx.Printf("%3d%s ", day.DayNumber, calendarMarks[day.Status])
		if utils.MondayIndex(day.Date) == 6 {
			ctx.Println()
		}
	}
	if utils.MondayIndex(cal.Days[len(cal.Days)-1].Date) != 6 {
		ctx.Println()
	}

	ctx.Printf("\n✓ achieved %d   ✗ missed %d   · vacation %d\n", cal.Stats.Achieved, cal.Stats.Missed, cal.Stats.Vacation)
	return nil
}
