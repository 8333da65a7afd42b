package logs

import (
	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/utils"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD), defaults to today."`
	All  bool   `short:"a" help:"Show unlogged slots too."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	view, err := ctx.Service.Day(date)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(view)
	}

	ctx.Printf("%s %s\n", view.Date.Weekday(), utils.FormatDate(view.Date))
	ctx.Printf("Total: %d/%d  %s %.1f%%\n\n", view.Total, view.Daily.Goal, cli.Bar(view.Daily.Percent, 20), view.Daily.Percent)

	if len(view.Entries) == 0 && !c.All {
		ctx.Println("No slots logged.")
		return nil
	}

	if c.All {
		for _, cell := range view.Slots {
			if !cell.Logged {
				ctx.Printf("  %s  ·\n", utils.SlotLabel(cell.Slot))
				continue
			}
			level := analytics.ScoreLevel(*cell.Score)
			ctx.Printf("  %s  %s %d  %s\n", utils.SlotLabel(cell.Slot), level.Emoji, *cell.Score, cell.Category)
		}
		return nil
	}

	for _, entry := range view.Entries {
		level := analytics.ScoreLevel(entry.Score)
		ctx.Printf("  %s  %s %d %-16s  %-12s  %s\n",
			utils.SlotLabel(entry.TimeSlot), level.Emoji, entry.Score, level.Name, entry.Category, entry.ID)
		if entry.Notes != "" {
			ctx.Printf("      %s\n", entry.Notes)
		}
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"ID of the log entry to delete (see 'day')."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.DeleteLog(c.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted log %s\n", c.ID)
	return nil
}
