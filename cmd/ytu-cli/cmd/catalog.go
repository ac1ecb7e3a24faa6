package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/ytu/cmd/ytu-cli/internal/output"
)

func newCatalogCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and inspect a catalog file",
		Long: `The catalog command checks and lists the content document the server serves:
courses, the dashboard and the learning-path diagrams.

Examples:
  # Validate a catalog before deploying it
  ytu-cli catalog validate --catalog ./catalog.yaml

  # List the learning paths of the embedded catalog
  ytu-cli catalog list

  # Machine-readable listing
  ytu-cli catalog list --format json`,
	}
	cmd.AddCommand(newCatalogValidateCmd(c), newCatalogListCmd(c))
	return cmd
}

func newCatalogValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog file",
		Long: `Validate parses the catalog strictly (unknown fields are errors), checks every
field constraint and verifies that each connection joins two nodes of its own path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "❌ Catalog validation failed: %v\n", err)
				return err
			}
			source := c.catalogPath
			if source == "" {
				source = "embedded catalog"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ %s is valid\n", source)
			fmt.Fprintf(out, "   Courses: %d\n", len(cat.Courses))
			fmt.Fprintf(out, "   Paths: %d\n", len(cat.Paths))
			if cat.Dashboard != nil {
				fmt.Fprintf(out, "   Dashboard: %s (level %d)\n", cat.Dashboard.Profile.Name, cat.Dashboard.Profile.Level)
			}
			return nil
		},
	}
}

func newCatalogListCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the learning paths of a catalog",
		Long: `List the learning paths with their node and beam counts.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format with a count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return output.PathsJSON(cmd.OutOrStdout(), cat.Paths)
			case "table":
				output.PathsTable(cmd.OutOrStdout(), cat.Paths)
				return nil
			default:
				return fmt.Errorf("unsupported output format '%s', use 'table' or 'json'", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
