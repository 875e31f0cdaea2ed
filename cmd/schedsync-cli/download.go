package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync/syncclient"
)

var (
	downloadOutput string
	downloadStdout bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <name> [local-path]",
	Short: "Download one document",
	Long: `Download one document. Without a local path the document is written to
the current directory under its own name. No merge is applied; use pull
to update the data directory.

Examples:
  schedsync-cli download tasks.json
  schedsync-cli download --stdout daily_stats.json | jq .
  schedsync-cli download -o ./backup/config.json config.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output file path")
	downloadCmd.Flags().BoolVar(&downloadStdout, "stdout", false, "write to stdout")
}

func runDownload(cmd *cobra.Command, args []string) error {
	name := args[0]

	localPath := ""
	if len(args) > 1 {
		localPath = args[1]
	}
	if downloadOutput != "" {
		localPath = downloadOutput
	}
	if downloadStdout {
		localPath = "-"
	}
	if localPath == "" {
		localPath = filepath.Base(name)
	}

	client, _, err := getClient()
	if err != nil {
		return err
	}

	content, err := client.Download(cmd.Context(), name)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	result := &syncclient.DownloadResult{Filename: name, LocalPath: localPath, Size: len(content)}

	if localPath == "-" {
		_, err := os.Stdout.Write(content)
		return err
	}

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(localPath, content, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return getFormatter().FormatDownload(os.Stdout, result)
}
