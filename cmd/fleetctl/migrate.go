package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fleet-backend/internal/shared/config"
	"fleet-backend/internal/shared/storage/db"
)

var (
	migrateDown   bool
	migrateStatus bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if migrateDown && migrateStatus {
			return fmt.Errorf("--down and --status cannot be combined")
		}
		cfg := config.Load()
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		ctx := cmd.Context()
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer sqlDB.Close()

		switch {
		case migrateStatus:
		case migrateDown:
			if err := db.RollbackLast(ctx, sqlDB); err != nil {
				return err
			}
		default:
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				return err
			}
		}
		version, err := db.Version(ctx, sqlDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the most recent migration")
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "Print the current schema version only")
	rootCmd.AddCommand(migrateCmd)
}
