package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/ytu/cmd/ytu-cli/internal/output"
	"github.com/nfrund/ytu/internal/pubsub"

	// Declares catalog.reloaded and live.session.
	_ "github.com/nfrund/ytu/internal/catalog"
	_ "github.com/nfrund/ytu/internal/live"
)

func newEventsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the events published on the internal bus",
		Long: `List every event the server declares on its watermill bus, with the
description given at declaration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := pubsub.Topics()
			switch format {
			case "json":
				return output.EventsJSON(cmd.OutOrStdout(), topics)
			case "table":
				output.EventsTable(cmd.OutOrStdout(), topics)
				return nil
			default:
				return fmt.Errorf("unsupported output format '%s', use 'table' or 'json'", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
