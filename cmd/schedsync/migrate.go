package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync/config"
	"github.com/sagarc03/schedsync/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the document table",
	Long: `Create the document table for the sqlite or postgres backend and
check that its schema matches what the gateway expects. Running it
against an already migrated database is harmless.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	if cfg.Storage.Type != config.StorageSQLite && cfg.Storage.Type != config.StoragePostgres {
		return fmt.Errorf("migrate needs a sqlite or postgres storage type, got %s", cfg.Storage.Type)
	}

	db, err := database.Connect(ctx, cfg.Database.ConnectConfig(cfg.Storage.Type))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if err := db.Validate(ctx); err != nil {
		return fmt.Errorf("validate database schema: %w", err)
	}

	slog.Info("database migration complete", "type", cfg.Storage.Type, "table", cfg.Database.Table)
	return nil
}
