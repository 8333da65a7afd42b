package insights

import (
	"strings"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/constants"
)

type PatternsCmd struct {
	Period string `short:"p" default:"all" enum:"week,month,all" help:"${period_help}"`
}

func (c *PatternsCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	patterns, err := ctx.Service.Patterns(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(patterns)
	}
	if len(patterns.HourRanking) == 0 {
		ctx.Println("No slots logged in this period.")
		return nil
	}

	ctx.Println("Weekdays by average score:")
	for i, day := range patterns.WeekdayRanking {
		ctx.Printf("  %d. %-10s %.2f  (%d slots)\n", i+1, day.Label, day.Avg, day.Count)
	}

	ctx.Println("\nPeak hours:")
	printHours(ctx, patterns.PeakHours)
	if len(patterns.LowHours) > 0 {
		ctx.Println("\nLow hours:")
		printHours(ctx, patterns.LowHours)
	}
	return nil
}

func printHours(ctx *cli.Context, hours []analytics.HourRank) {
	for _, h := range hours {
		ctx.Printf("  %s  %s %.2f  (%d slots)\n", h.Label, cli.Bar(h.Avg/constants.MaxSlotScore*100, 12), h.Avg, h.Count)
	}
}

// heatShades maps an average score, rounded down, to a cell glyph.
var heatShades = [constants.MaxSlotScore + 1]string{"··", "░░", "▒▒", "▓▓", "██"}

type HeatmapCmd struct {
	Period string `short:"p" default:"all" enum:"week,month,all" help:"${period_help}"`
	Empty  bool   `help:"Include hours with no logged slots."`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	view, err := ctx.Service.Heatmap(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(view)
	}

	header := make([]string, len(view.Columns))
	for i, col := range view.Columns {
		header[i] = col[:2]
	}
	ctx.Printf("       %s\n", strings.Join(header, " "))

	for hour, row := range view.Cells {
		empty := true
		cells := make([]string, len(row))
		for day, avg := range row {
			if avg > 0 {
				empty = false
			}
			cells[day] = heatShades[min(int(avg), constants.MaxSlotScore)]
		}
		if empty && !c.Empty {
			continue
		}
		ctx.Printf("  %s %s\n", view.Rows[hour], strings.Join(cells, " "))
	}
	ctx.Println("\n  ·· 0  ░░ 1  ▒▒ 2  ▓▓ 3  ██ 4 (average score)")
	return nil
}

type DistributionCmd struct {
	Period string `short:"p" default:"all" enum:"week,month,all" help:"${period_help}"`
}

func (c *DistributionCmd) Run(ctx *cli.Context) error {
	period, err := cli.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	dist, err := ctx.Service.Distribution(period)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(dist)
	}

	total := 0
	for _, n := range dist {
		total += n
	}
	for score := constants.MinSlotScore; score <= constants.MaxSlotScore; score++ {
		level := analytics.ScoreLevel(score)
		pct := 0.0
		if total > 0 {
			pct = float64(dist[score]) / float64(total) * 100
		}
		ctx.Printf("  %s %d %-17s %s %4d (%.1f%%)\n", level.Emoji, score, level.Name, cli.Bar(pct, 20), dist[score], pct)
	}
	return nil
}
