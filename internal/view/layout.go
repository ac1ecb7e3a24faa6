// Package view holds the site's pages, built with gomponents. The animated
// beam overlay is a templ component embedded through Templ.
package view

import (
	cmp "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

// SiteName is shown in the navbar and page titles.
const SiteName = "YT University"

// Title builds the document title.
func Title(title string) string {
	if title != "" {
		return title + " - " + SiteName
	}
	return SiteName
}

// Page wraps body in the document shell with the navigation bar. active is
// the tab highlighted in the navbar.
func Page(title, active string, body ...cmp.Node) cmp.Node {
	return components.HTML5(components.HTML5Props{
		Title:       Title(title),
		Description: "Learn anything, one beam at a time.",
		Language:    "en",
		Head: []cmp.Node{
			g.Script(g.Src("https://cdn.tailwindcss.com")),
			g.Script(g.Src("https://unpkg.com/htmx.org@2.0.4")),
			g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
			g.Script(g.Src("/static/js/live.js"), g.Defer()),
		},
		Body: []cmp.Node{
			g.Class("min-h-screen bg-gray-50 text-gray-900"),
			Navbar(active),
			g.Main(g.Class("mx-auto"), cmp.Group(body)),
		},
	})
}

// Navbar renders the top navigation: brand, tabs with an animated marker on
// the active one, search box and account buttons. On small screens the tabs
// collapse to their icons.
func Navbar(active string) cmp.Node {
	return g.Nav(
		g.Class("sticky top-0 z-50 px-4 pt-4"),
		g.Div(
			g.Class("mx-auto flex w-full max-w-5xl items-center gap-3 rounded-full border bg-white/80 px-2 py-2 shadow-lg backdrop-blur-lg nav-enter"),
			g.A(g.Href("/"), g.Class("pl-3 pr-2 text-lg font-bold text-indigo-600"),
				g.Span(g.Class("text-red-500"), cmp.Text("YT")), cmp.Text("University")),
			g.Ul(
				g.Class("flex flex-1 items-center justify-center gap-1"),
				cmp.Map(NavItems, func(item NavItem) cmp.Node {
					return g.Li(navLink(item, item.Tab == active))
				}),
			),
			g.Div(
				g.Class("flex items-center gap-2 pr-3"),
				searchBox(),
				g.Button(g.Type("button"),
					g.Class("nav-press rounded-full border bg-white px-3 py-1.5 text-sm font-medium hover:bg-gray-100"),
					cmp.Text("Login")),
				g.Button(g.Type("button"),
					g.Class("nav-press rounded-full bg-indigo-600 px-3 py-1.5 text-sm font-medium text-white hover:bg-indigo-700"),
					cmp.Text("Sign Up")),
			),
		),
	)
}

func navLink(item NavItem, active bool) cmp.Node {
	return g.A(
		g.Href(item.Href),
		g.TitleAttr(item.Label),
		cmp.If(active, cmp.Attr("aria-current", "page")),
		components.Classes{
			"nav-tab relative rounded-full px-4 py-2 text-sm font-semibold transition-all duration-300": true,
			"text-gray-900":                     active,
			"text-gray-600 hover:text-gray-900": !active,
		},
		cmp.If(active, g.Span(g.Class("nav-marker"), cmp.Attr("aria-hidden", "true"))),
		item.Icon.SVG(18, "relative z-10 sm:hidden"),
		g.Span(g.Class("relative z-10 hidden sm:inline"), cmp.Text(item.Label)),
	)
}

func searchBox() cmp.Node {
	return g.Label(
		g.Class("flex items-center rounded-full border bg-white/50 px-3 py-1.5 focus-within:ring-2 focus-within:ring-indigo-500/50"),
		IconSearch.SVG(16, "text-gray-400"),
		g.Input(
			g.Type("search"),
			g.Name("q"),
			g.Placeholder("Search..."),
			cmp.Attr("aria-label", "Search"),
			g.Class("ml-2 w-24 border-none bg-transparent text-sm outline-none md:w-32 lg:w-40"),
		),
	)
}
