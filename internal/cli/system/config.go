package system

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/config"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration." default:"1"`
	Init ConfigInitCmd `cmd:"" help:"Write the default configuration file."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	if ctx.JSON {
		return ctx.PrintJSON(ctx.Config)
	}
	data, err := toml.Marshal(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	ctx.Printf("# %s\n", config.Path(ctx.ConfigDir))
	ctx.Printf("%s", data)
	return nil
}

type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *ConfigInitCmd) Run(ctx *cli.Context) error {
	path := config.Path(ctx.ConfigDir)
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.Default(ctx.ConfigDir)); err != nil {
		return err
	}
	ctx.Printf("✓ Wrote default config to: %s\n", path)
	return nil
}
