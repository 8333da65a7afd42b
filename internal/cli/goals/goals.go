package goals

import (
	"github.com/julianstephens/slotscore/internal/analytics"
	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/models"
)

type GoalsCmd struct {
	Daily   *int `help:"Daily score goal."`
	Weekly  *int `help:"Weekly score goal (Saturday to Friday)."`
	Monthly *int `help:"Monthly score goal."`
}

func (c *GoalsCmd) Run(ctx *cli.Context) error {
	updated := c.Daily != nil || c.Weekly != nil || c.Monthly != nil

	var (
		result models.Goals
		err    error
	)
	if updated {
		result, err = ctx.Service.UpdateGoals(c.Daily, c.Weekly, c.Monthly)
	} else {
		result, err = ctx.Service.Goals()
	}
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(result)
	}

	if updated {
		ctx.Println("✓ Goals updated")
	}
	ctx.Printf("Daily:   %d\n", result.Daily)
	ctx.Printf("Weekly:  %d\n", result.Weekly)
	ctx.Printf("Monthly: %d\n", result.Monthly)
	return nil
}

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	overview, err := ctx.Service.GoalsProgress()
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(overview)
	}

	printProgress(ctx, "Today", overview.Daily, false)
	printProgress(ctx, "This week", overview.Weekly, true)
	printProgress(ctx, "This month", overview.Monthly, true)
	return nil
}

func printProgress(ctx *cli.Context, label string, p analytics.Progress, showDays bool) {
	ctx.Printf("%-11s %s %5.1f%%  %d/%d", label, cli.Bar(p.Percent, 24), p.Percent, p.Score, p.Goal)
	switch {
	case p.Reached():
		ctx.Printf("  ✓ reached")
	case showDays:
		ctx.Printf("  %d to go, %d days left", p.Remaining, p.DaysLeft)
	default:
		ctx.Printf("  %d to go", p.Remaining)
	}
	ctx.Println()
}
