package goals

import (
	"github.com/julianstephens/slotscore/internal/cli"
)

type CategoriesCmd struct {
	List   CategoriesListCmd   `cmd:"" help:"List categories." default:"1"`
	Add    CategoriesAddCmd    `cmd:"" help:"Add a custom category or restore a hidden built-in one."`
	Delete CategoriesDeleteCmd `cmd:"" help:"Delete a custom category or hide a built-in one."`
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Service.Categories()
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.PrintJSON(categories)
	}
	if len(categories) == 0 {
		ctx.Println("No categories.")
		return nil
	}
	for _, category := range categories {
		kind := "custom"
		if category.IsDefault {
			kind = "built-in"
		}
		ctx.Printf("  %-24s %s\n", category.Label(), kind)
	}
	return nil
}

type CategoriesAddCmd struct {
	Name string `arg:"" help:"Category name."`
	Icon string `help:"Emoji shown next to the name."`
}

func (c *CategoriesAddCmd) Run(ctx *cli.Context) error {
	category, err := ctx.Service.AddCategory(c.Name, c.Icon)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added category %s\n", category.Label())
	return nil
}

type CategoriesDeleteCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoriesDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.DeleteCategory(c.Name); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted category %s\n", c.Name)
	return nil
}
