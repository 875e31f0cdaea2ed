package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync"
	"github.com/sagarc03/schedsync/config"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List documents in the configured store",
	Long: `List document keys straight from the configured store, bypassing the
HTTP gateway. With --long each key is fetched to show its size, ETag and
last update time.`,
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolP("long", "l", false, "show size, etag and update time")

	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	long, _ := cmd.Flags().GetBool("long")
	return listStore(ctx, store, cmd.OutOrStdout(), long)
}

func listStore(ctx context.Context, store schedsync.ObjectStore, out io.Writer, long bool) error {
	keys, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list store: %w", err)
	}

	if !long {
		for _, k := range keys {
			_, _ = fmt.Fprintln(out, k)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tSIZE\tETAG\tUPDATED")
	for _, k := range keys {
		obj, err := store.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("get %s: %w", k, err)
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", obj.Key, obj.Size, obj.ETag, obj.UpdatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
