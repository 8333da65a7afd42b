package system

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/migration"
)

// schemaStore is implemented by the SQL-backed stores.
type schemaStore interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)
}

type dbStore interface {
	GetDB() *sql.DB
}

// sqlDB returns the open connection of a SQL store, or nil.
func sqlDB(ctx *cli.Context) *sql.DB {
	if s, ok := ctx.Store.(dbStore); ok {
		return s.GetDB()
	}
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		return fmt.Errorf("migrate command only supports the sqlite and postgres backends")
	}

	// Snapshot before touching the schema
	ctx.PerformAutomaticBackup()

	count, err := store.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
