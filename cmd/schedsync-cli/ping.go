package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const pingTimeout = 5 * time.Second

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the gateway is reachable",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the gateway's service description",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runPing(cmd *cobra.Command, _ []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
	defer cancel()

	pingErr := client.Ping(ctx)
	if err := getFormatter().FormatPing(os.Stdout, client.Endpoint(), pingErr); err != nil {
		return err
	}
	if pingErr != nil {
		return errReported
	}
	return nil
}

func runInfo(cmd *cobra.Command, _ []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	desc, err := client.Describe(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatInfo(os.Stdout, desc)
}
