package view

import (
	"context"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/live"
)

var nodeIcons = map[string]string{
	"code":    "💻",
	"compass": "🧭",
	"gamepad": "🎮",
	"layers":  "🗂️",
	"rocket":  "🚀",
	"video":   "🎬",
}

func nodeIcon(name string) string {
	if icon, ok := nodeIcons[name]; ok {
		return icon
	}
	return "📘"
}

// LearningPaths is the learning-path page: the path switcher and the
// diagram of the selected path.
func LearningPaths(ctx context.Context, paths []catalog.Path, snap diagram.Snapshot) cmp.Node {
	return g.Section(
		g.Class("mx-auto max-w-6xl px-4 py-12"),
		g.H1(g.Class("mb-2 text-center text-3xl font-bold"), cmp.Text("Learning Paths")),
		g.P(g.Class("mb-8 text-center text-gray-500"), cmp.Text("Follow a path from the first lesson to the last.")),
		g.Div(
			g.Class("mb-8 flex flex-wrap justify-center gap-3"),
			g.ID("path-switcher"),
			cmp.Map(paths, func(p catalog.Path) cmp.Node {
				return pathTab(p, p.ID == snap.Path.ID)
			}),
		),
		Diagram(ctx, snap),
	)
}

func pathTab(p catalog.Path, active bool) cmp.Node {
	href := "/learning-paths/" + p.ID
	return g.A(
		g.Href(href),
		hx.Get(href),
		hx.Target("#diagram"),
		hx.Swap("outerHTML"),
		hx.PushURL("true"),
		components.Classes{
			"rounded-full px-5 py-2 text-sm font-medium transition": true,
			"bg-indigo-600 text-white":                              active,
			"bg-white text-gray-700 shadow-sm hover:bg-indigo-50":   !active,
		},
		cmp.Text(p.Title),
	)
}

// Diagram renders the htmx-swappable fragment of one learning path: the
// node grid and one beam overlay per connection. Beams are computed from
// the server-side layout and refreshed by the live channel.
func Diagram(ctx context.Context, snap diagram.Snapshot) cmp.Node {
	p := snap.Path
	return g.Div(
		g.ID("diagram"),
		g.Class("rounded-2xl bg-white shadow-sm"),
		g.Div(
			g.Class("flex items-center justify-between border-b px-6 py-4"),
			g.Div(
				g.H2(g.Class("text-xl font-semibold"), cmp.Text(p.Title)),
				g.P(g.Class("text-sm text-gray-500"), cmp.Text(p.Description)),
			),
			g.A(g.Href("/learning-paths/"+p.ID+"/graph.svg"), g.Class("text-sm text-indigo-600 hover:underline"),
				cmp.Text("Export graph")),
		),
		g.Div(
			g.Class("relative flex min-h-[500px] w-full items-center justify-center overflow-hidden p-6"),
			g.Data("live-view", live.ViewPath),
			g.Data("path", p.ID),
			g.Data("container", ""),
			g.Div(
				g.Class("grid grid-cols-1 gap-8 sm:grid-cols-2 md:grid-cols-3"),
				cmp.Map(p.Nodes, PathNode),
			),
			cmp.Map(snap.Beams, func(b diagram.Beam) cmp.Node {
				return Templ(ctx, Beam(b, snap.Style))
			}),
		),
	)
}

// PathNode renders one course card of a learning path.
func PathNode(n catalog.Node) cmp.Node {
	return g.Div(
		g.Class("z-10 flex h-[148px] w-[220px] max-w-full flex-col items-center justify-center rounded-xl border-2 bg-white p-4 text-center shadow-md"),
		g.Style("border-color: "+diagram.BorderColor(n.Color)),
		g.Data("node", n.ID),
		g.Span(g.Class("mb-2 text-2xl"), cmp.Text(nodeIcon(n.Icon))),
		g.H3(g.Class("text-sm font-semibold"), cmp.Text(n.Title)),
		cmp.If(n.Description != "", g.P(g.Class("mt-1 text-xs text-gray-500"), cmp.Text(n.Description))),
	)
}
