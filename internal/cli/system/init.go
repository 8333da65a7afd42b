package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/config"
	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/models"
	"github.com/julianstephens/slotscore/internal/storage"
)

// endOfTime bounds range queries that should return every log.
var endOfTime = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

type InitCmd struct {
	Force      bool   `help:"Force reset by deleting the existing sqlite database or json data directory before initialization."`
	Source     string `help:"Source database path, json data directory or connection string to copy the current user's data from."`
	SourceUser string `help:"User id to copy from the source (defaults to the current user)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	cfgPath := config.Path(ctx.ConfigDir)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) && ctx.ConfigDir != "" {
		if err := config.Save(cfgPath, ctx.Config); err != nil {
			return err
		}
		ctx.Printf("Wrote default config to: %s\n", cfgPath)
	}

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if ctx.Config.Storage.Backend == config.BackendPostgres {
		return fmt.Errorf("--force is not supported for postgres, drop the %s schema manually", constants.AppName)
	}

	path := ctx.Store.GetConfigPath()
	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}
	// Don't delete if it's the source (user error protection)
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing storage: %w", err)
	}
	// Close first to prevent file locking issues
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing storage: %w", err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete existing storage: %w", err)
	}
	ctx.Printf("Deleted existing storage at: %s\n", path)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	source, err := cli.NewStore(cli.DetectBackend(c.Source), c.Source, false)
	if err != nil {
		return err
	}
	defer source.Close()
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}

	userID := ctx.Service.UserID()
	srcUser := c.SourceUser
	if srcUser == "" {
		srcUser = userID
	}
	return copyUser(ctx, source, srcUser, userID)
}

// copyUser copies goals, categories and logs of srcUser in src to dstUser in
// the context's store.
func copyUser(ctx *cli.Context, src storage.Provider, srcUser, dstUser string) error {
	dst := ctx.Store

	ctx.Println("  Migrating goals...")
	goals, err := src.GetUserGoals(srcUser)
	if err != nil {
		return fmt.Errorf("failed to get goals from source: %w", err)
	}
	if err := dst.SaveUserGoals(dstUser, goals); err != nil {
		return fmt.Errorf("failed to save goals to destination: %w", err)
	}

	ctx.Println("  Migrating categories...")
	categories, err := src.GetCategories(srcUser)
	if err != nil {
		return fmt.Errorf("failed to get categories from source: %w", err)
	}
	if err := copyCategories(dst, dstUser, categories); err != nil {
		return err
	}
	ctx.Printf("    Migrated %d categories\n", len(categories))

	ctx.Println("  Migrating logs...")
	logs, err := src.GetLogsByDateRange(srcUser, time.Time{}, endOfTime)
	if err != nil {
		return fmt.Errorf("failed to get logs from source: %w", err)
	}
	for _, entry := range logs {
		entry.UserID = dstUser
		if _, err := dst.LogProductivity(entry); err != nil {
			return fmt.Errorf("failed to add log %s: %w", entry.ID, err)
		}
	}
	ctx.Printf("    Migrated %d logs\n", len(logs))
	return nil
}

// copyCategories adds custom categories and hides built-ins the source had hidden.
func copyCategories(dst storage.Provider, userID string, categories []models.Category) error {
	visible := make(map[string]bool, len(categories))
	for _, category := range categories {
		visible[category.Name] = true
		if category.IsDefault {
			continue
		}
		if err := dst.AddCategory(userID, category); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("failed to add category %s: %w", category.Name, err)
		}
	}
	for _, def := range constants.DefaultCategories {
		if visible[def.Name] {
			continue
		}
		if err := dst.DeleteCategory(userID, def.Name); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to hide category %s: %w", def.Name, err)
		}
	}
	return nil
}
