package cmd

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/logging"
	"github.com/nfrund/ytu/internal/tui"
)

func newPreviewCmd(c *cli) *cobra.Command {
	var (
		delay   time.Duration
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "preview [path-id]",
		Short: "Preview the learning-path diagrams in the terminal",
		Long: `Preview draws the learning paths with braille characters. The terminal
window stands in for the diagram container: resize it and the grid and beams
are laid out again once the resize settles.

Keys: ←/→ or tab switch paths, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}
			paths := cat.Paths
			if len(args) == 1 {
				i := -1
				for j, p := range paths {
					if p.ID == args[0] {
						i = j
					}
				}
				if i < 0 {
					return errors.New("unknown learning path: " + args[0])
				}
				// Start on the requested path; the others stay reachable.
				paths = append(append([]catalog.Path{}, paths[i:]...), paths[:i]...)
			}

			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := c.fs.Create(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			level, _ := logging.ParseLevel(c.logLevel)
			logger := slog.New(logging.NewHandler(w, "text", level))

			return tui.Run(cmd.Context(), paths, tui.WithDelay(delay), tui.WithLogger(logger))
		},
	}
	cmd.Flags().DurationVar(&delay, "debounce", 100*time.Millisecond, "Resize debounce delay")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the preview runs")
	return cmd
}
