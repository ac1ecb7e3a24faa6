package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	cmp "maragu.dev/gomponents"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/handlers"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/rendering"
	"github.com/nfrund/ytu/internal/view"
)

// page is one exported document, relative to the output directory.
type page struct {
	file string
	node cmp.Node
}

func sitePages(ctx context.Context, cat *catalog.Catalog, grid layout.Grid) []page {
	pages := []page{
		{"index.html", view.Page("", view.TabHome, view.Landing(len(cat.Courses)))},
		{"courses.html", view.Page("Courses", view.TabCourses, view.Courses(cat.Courses))},
	}
	if cat.Dashboard != nil {
		pages = append(pages, page{"dashboard.html", view.Page("My Dashboard", view.TabDashboard, view.Dashboard(cat.Dashboard))})
	}
	for i := range cat.Paths {
		p := &cat.Paths[i]
		snap := diagram.Static(p, grid, handlers.RenderWidth, handlers.RenderViewport)
		body := view.LearningPaths(ctx, cat.Paths, snap)
		pages = append(pages, page{
			filepath.Join("learning-paths", p.ID+".html"),
			view.Page("Learning Paths", view.TabLearningPaths, body),
		})
	}
	return pages
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		outDir string
		graphs bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the site's pages to static HTML files",
		Long: `Export renders the landing page, the course grid, the dashboard and every
learning path to HTML, laid out for a desktop window. The pages still load
their scripts and styles from the server's /static routes.

Examples:
  ytu-cli export --out ./dist
  ytu-cli export --out ./dist --graphs   # also write learning-paths/<id>.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			renderer := rendering.NewUniversalRenderer()

			write := func(name string, data []byte) error {
				full := filepath.Join(outDir, name)
				if err := c.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
					return err
				}
				if err := afero.WriteFile(c.fs, full, data, 0o644); err != nil {
					return err
				}
				slog.Debug("Exported file", "file", full, "bytes", len(data))
				return nil
			}

			pages := sitePages(ctx, cat, layout.Default())
			for _, p := range pages {
				html, err := renderer.RenderComponent(ctx, p.node)
				if err != nil {
					return fmt.Errorf("rendering %s: %w", p.file, err)
				}
				if err := write(p.file, html); err != nil {
					return err
				}
			}
			written := len(pages)

			if graphs {
				for i := range cat.Paths {
					p := &cat.Paths[i]
					svg, err := diagram.RenderSVG(ctx, diagram.ToDOT(p))
					if err != nil {
						return fmt.Errorf("rendering graph %s: %w", p.ID, err)
					}
					if err := write(filepath.Join("learning-paths", p.ID+".svg"), svg); err != nil {
						return err
					}
					written++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %d files to %s\n", written, outDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "Output directory")
	cmd.Flags().BoolVar(&graphs, "graphs", false, "Also export Graphviz SVGs of every path")
	return cmd
}
