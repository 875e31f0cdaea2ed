package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync/syncclient"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload every scheduler file in the data directory",
	Long: `Upload every allowed scheduler file present in the data directory.
Files that do not exist locally are skipped.`,
	Args: cobra.NoArgs,
	RunE: runPush,
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download every document into the data directory",
	Long: `Download every allowed document into the data directory. Documents the
gateway does not hold are skipped. tasks.json is merged with the local
copy: the cloud version wins except that a task completed locally stays
completed and local-only tasks are kept.`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local changes, then pull cloud updates",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func newSyncer() (*syncclient.Syncer, error) {
	client, cfg, err := getClient()
	if err != nil {
		return nil, err
	}
	return syncclient.NewSyncer(client, cfg.DataDir)
}

func runPush(cmd *cobra.Command, _ []string) error {
	syncer, err := newSyncer()
	if err != nil {
		return err
	}

	stats, err := syncer.PushAll(cmd.Context())
	if err != nil {
		return err
	}
	return reportStats("push", &stats)
}

func runPull(cmd *cobra.Command, _ []string) error {
	syncer, err := newSyncer()
	if err != nil {
		return err
	}

	stats, err := syncer.PullAll(cmd.Context())
	if err != nil {
		return err
	}
	return reportStats("pull", &stats)
}

func reportStats(phase string, stats *syncclient.SyncStats) error {
	if err := getFormatter().FormatStats(os.Stdout, phase, stats); err != nil {
		return err
	}
	if stats.Failed > 0 {
		return errReported
	}
	return nil
}

func runSync(cmd *cobra.Command, _ []string) error {
	syncer, err := newSyncer()
	if err != nil {
		return err
	}

	report, err := syncer.Sync(cmd.Context())
	if err != nil {
		return err
	}

	if err := getFormatter().FormatReport(os.Stdout, report); err != nil {
		return err
	}
	if !report.OK() {
		return errReported
	}
	return nil
}
