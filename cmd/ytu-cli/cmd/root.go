package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/logging"
)

// cli carries the state shared by every subcommand.
type cli struct {
	fs          afero.Fs
	catalogPath string
	logLevel    string
}

func (c *cli) loadCatalog() (*catalog.Catalog, error) {
	if c.catalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.fs, c.catalogPath)
}

// NewRootCmd builds the command tree. Files are read from and written to fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	c := &cli{fs: fs}

	root := &cobra.Command{
		Use:   "ytu-cli",
		Short: "YT University CLI tool",
		Long: `ytu-cli works with the YT University catalog outside the web server.

Available commands:
  catalog     Validate and inspect a catalog file
  events      List the events published on the internal bus
  graph       Export a learning path as Graphviz DOT or SVG
  export      Render the site's pages to static HTML files
  preview     Preview the learning-path diagrams in the terminal
  new-module  Scaffold a new application module

Use "ytu-cli [command] --help" for more information about a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(c.logLevel)
			if err != nil {
				return err
			}
			logging.New(cmd.ErrOrStderr(), "text", level)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.catalogPath, "catalog", "c", "", "Catalog file (default: the embedded catalog)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newVersionCmd(),
		newCatalogCmd(c),
		newEventsCmd(),
		newGraphCmd(c),
		newExportCmd(c),
		newPreviewCmd(c),
		newModuleCmd(c),
	)
	return root
}

// Execute executes the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
