package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "schedsync",
	Short:   "Sync gateway for daily scheduler documents",
	Long: `schedsync is a small HTTP gateway that keeps the daily scheduler's
JSON documents in one place so every device can list, upload and
download them. Documents live in the configured object store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeat to merge (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("storage-type", "", "storage backend: memory, filesystem, sqlite, postgres, s3, redis (env: SCHEDSYNC_STORAGE_TYPE)")
	rootCmd.PersistentFlags().String("storage-path", "", "document directory for the filesystem backend (default: ./data, env: SCHEDSYNC_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: schedsync.db, env: SCHEDSYNC_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("db-table", "", "document table name (default: schedsync_documents, env: SCHEDSYNC_DATABASE_TABLE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: SCHEDSYNC_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
