package insights

import (
	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/utils"
)

// PeriodHelp is interpolated into --period help as ${period_help}.
const PeriodHelp = "Period to analyze: week (Saturday to today), month, or all."

// windowLabel describes the window a period covers ending today.
func windowLabel(ctx *cli.Context, period analytics.Period) string {
	w := analytics.PeriodWindow(period, ctx.Service.Today())
	if period == analytics.PeriodAll {
		return "all time"
	}
	return utils.FormatDate(w.Start) + " to " + utils.FormatDate(w.End)
}

type StatsCmd struct {
	Period string `short:"p" default:"week" enum:"week,month,all" help:"${period_help}"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	summary, err := ctx.Service.Summary(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(summary)
	}

	ctx.Printf("Stats for %s (%s)\n\n", period, windowLabel(ctx, period))
	if summary.TotalEntries == 0 {
		ctx.Println("No slots logged in this period.")
		return nil
	}
	ctx.Printf("  Total score:     %d\n", summary.TotalScore)
	ctx.Printf("  Slots logged:    %d (avg %.2f)\n", summary.TotalEntries, summary.AvgScore)
	ctx.Printf("  Days tracked:    %d\n", summary.DaysTracked)
	ctx.Printf("  Best hour:       %s (avg %.2f)\n", summary.BestHourLabel, summary.BestHourAvg)
	ctx.Printf("  Best weekday:    %s (avg %.2f)\n", summary.BestWeekday, summary.BestDayAvg)
	ctx.Printf("  Current streak:  %d days\n", summary.CurrentStreak)
	ctx.Printf("  Longest streak:  %d days\n", summary.LongestStreak)
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	streaks, err := ctx.Service.Streaks()
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(streaks)
	}

	flame := ""
	if streaks.Current > 0 {
		flame = " 🔥"
	}
	ctx.Printf("Current streak:  %d days%s\n", streaks.Current, flame)
	ctx.Printf("Longest streak:  %d days\n", streaks.Longest)
	ctx.Printf("Full goal days:  %d (goal %d)\n", streaks.FullGoalDays, streaks.DailyGoal)
	return nil
}

type CompareCmd struct {
	Period string `short:"p" default:"week" enum:"week,month" help:"Period to compare with the one before it."`
}

func (c *CompareCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	cmp, err := ctx.Service.Compare(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(cmp)
	}

	r := cmp.Result
	ctx.Printf("This %s (%s to %s) vs previous (%s to %s)\n\n", period,
		utils.FormatDate(cmp.Current.Start), utils.FormatDate(cmp.Current.End),
		utils.FormatDate(cmp.Previous.Start), utils.FormatDate(cmp.Previous.End))
	if !r.HasData() {
		ctx.Println("No slots logged in either period.")
		return nil
	}
	ctx.Printf("  %-14s %8s %8s %9s\n", "", "current", "previous", "change")
	ctx.Printf("  %-14s %8d %8d %+8.1f%%\n", "Total score", r.CurrentScore, r.PreviousScore, r.ScoreChangePct)
	ctx.Printf("  %-14s %8.2f %8.2f %+8.1f%%\n", "Avg score", r.CurrentAvg, r.PreviousAvg, r.AvgChangePct)
	ctx.Printf("  %-14s %8d %8d %+9d\n", "Slots logged", r.CurrentEntries, r.PreviousEntries, r.EntriesChange)
	return nil
}

type TrendCmd struct {
	Period string `short:"p" default:"month" enum:"week,month,all" help:"${period_help}"`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	points, err := ctx.Service.Trend(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(points)
	}
	if len(points) == 0 {
		ctx.Println("No slots logged in this period.")
		return nil
	}

	peak := 0
	for _, p := range points {
		peak = max(peak, p.Score)
	}
	for _, p := range points {
		pct := 0.0
		if peak > 0 {
			pct = float64(p.Score) / float64(peak) * 100
		}
		ctx.Printf("  %s  %s %4d\n", utils.FormatDate(p.Date), cli.Bar(pct, 30), p.Score)
	}
	return nil
}
