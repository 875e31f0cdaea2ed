package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload one scheduler file",
	Long: `Upload one scheduler file. The document name defaults to the file's
base name and must be one of the gateway's allowed files.

Examples:
  schedsync-cli upload ~/.schedsync/data/tasks.json
  schedsync-cli upload --name config.json ./backup/config-2026-10-19.json`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadName, "name", "n", "", "document name (default: base name of file)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	localPath := args[0]

	name := uploadName
	if name == "" {
		name = filepath.Base(localPath)
	}

	content, err := os.ReadFile(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	client, _, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Upload(cmd.Context(), name, string(content))
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatUpload(os.Stdout, result)
}
