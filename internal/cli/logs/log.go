package logs

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	apperrors "github.com/julianstephens/slotscore/internal/errors"
	"github.com/julianstephens/slotscore/internal/tui"
	"github.com/julianstephens/slotscore/internal/utils"
)

type LogCmd struct {
	Slot        string `arg:"" optional:"" help:"Slot index (0-47) or time of day (HH:MM)."`
	Score       string `arg:"" optional:"" help:"Score from 0 (no productivity) to 4 (peak performance)."`
	Date        string `help:"Date to log (YYYY-MM-DD), defaults to today."`
	Category    string `short:"c" help:"Category name."`
	Notes       string `short:"n" help:"Free-form notes."`
	Interactive bool   `short:"i" help:"Fill in the slot with an interactive form."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.prompt(ctx); err != nil {
			return err
		}
	}
	if c.Slot == "" || c.Score == "" {
		return apperrors.Usagef("slot and score are required (or use --interactive)")
	}

	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	slot, err := cli.ParseSlot(c.Slot)
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(c.Score)
	if err != nil {
		return apperrors.Usagef("invalid score %q, expected 0-4", c.Score)
	}

	res, err := ctx.Service.LogSlot(date, slot, score, c.Category, c.Notes)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(res)
	}

	level := analytics.ScoreLevel(res.Entry.Score)
	ctx.Printf("✓ Logged %s on %s: %s %s (%d)\n",
		utils.SlotLabel(res.Entry.TimeSlot), res.Entry.Day(), level.Emoji, level.Name, res.Entry.Score)
	ctx.Printf("  Day total: %d/%d (%.1f%%)\n", res.DayTotal, res.Daily.Goal, res.Daily.Percent)
	if res.GoalReached {
		ctx.Println("  🎉 Daily goal reached!")
	}
	return nil
}

// prompt fills the command from a huh form, keeping any values given as flags.
func (c *LogCmd) prompt(ctx *cli.Context) error {
	categories, err := ctx.Service.Categories()
	if err != nil {
		return err
	}

	fm := tui.NewLogFormModel(ctx.Service.Today(), utils.SlotAt(ctx.Service.Now()))
	if c.Date != "" {
		fm.Date = c.Date
	}
	if c.Slot != "" {
		slot, err := cli.ParseSlot(c.Slot)
		if err != nil {
			return err
		}
		fm.Slot = slot
	}
	if c.Category != "" {
		fm.Category = c.Category
	}
	fm.Notes = c.Notes

	if err := tui.NewLogForm(fm, categories).Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}

	c.Date = fm.Date
	c.Slot = strconv.Itoa(fm.Slot)
	c.Score = strconv.Itoa(fm.Score)
	c.Category = fm.Category
	c.Notes = fm.Notes
	return nil
}
