package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/ytu/internal/diagram"
)

func newGraphCmd(c *cli) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "graph <path-id>",
		Short: "Export a learning path as Graphviz DOT or SVG",
		Long: `Export the nodes and connections of a learning path as a Graphviz graph.

Examples:
  ytu-cli graph frontend                       # DOT on stdout
  ytu-cli graph anime --format svg -o anime.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}
			p, err := cat.Path(args[0])
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, cat.PathIDs())
			}

			var data []byte
			dot := diagram.ToDOT(p)
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				if data, err = diagram.RenderSVG(cmd.Context(), dot); err != nil {
					return fmt.Errorf("rendering %s: %w", p.ID, err)
				}
			default:
				return fmt.Errorf("unsupported graph format '%s', use 'dot' or 'svg'", format)
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := afero.WriteFile(c.fs, out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "Graph format (dot, svg)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
