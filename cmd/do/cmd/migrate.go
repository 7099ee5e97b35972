package cmd

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}

	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", db.RunMigrations),
		migrateStep("down", "Roll back the latest migration", db.MigrateDown),
		migrateStep("status", "Print the status of every migration", db.MigrationStatus),
	)
	return cmd
}

func migrateStep(use, short string, step func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *config.Config, database *sqlx.DB) error {
				return step(database.DB, cfg.DBDriver)
			})
		},
	}
}

// withDatabase opens the configured database for the duration of fn.
func withDatabase(fn func(cfg *config.Config, database *sqlx.DB) error) error {
	cfg := config.LoadDatabase()

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	return fn(cfg, database)
}
