package view

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/live"
)

// StatCardSize is the assumed card size for server-rendered decorations,
// replaced by the measured size once the live channel reports it.
var StatCardSize = geometry.Dimension{Width: 320, Height: 140}

type courseState int

const (
	courseInProgress courseState = iota
	courseCompleted
	courseRecommended
)

// Dashboard is the student dashboard: sidebar, stats and course sections.
func Dashboard(d *catalog.Dashboard) cmp.Node {
	return g.Div(
		g.Class("flex min-h-[calc(100vh-4rem)] bg-gray-100/60"),
		g.Data("live-view", live.ViewDashboard),
		sidebar(d),
		g.Div(
			g.Class("flex-1 overflow-auto p-6"),
			g.Div(
				g.Class("mb-8"),
				g.H1(g.Class("mb-2 text-2xl font-bold"), cmp.Text("Welcome back, "+d.Profile.Name+"!")),
				g.P(g.Class("text-gray-500"), cmp.Text("Continue your learning journey today.")),
			),
			g.Div(
				g.Class("mb-8 grid grid-cols-1 gap-4 md:grid-cols-3"),
				cmp.Group(statCards(d.Stats)),
			),
			courseSection("Continue Learning", d.InProgress, courseInProgress),
			courseSection("Completed Courses", d.Completed, courseCompleted),
			courseSection("Recommended for You", d.Recommended, courseRecommended),
		),
	)
}

func sidebar(d *catalog.Dashboard) cmp.Node {
	p := d.Profile
	return g.Aside(
		g.Class("hidden w-64 flex-col border-r bg-white p-4 md:flex"),
		g.Div(
			g.Class("mb-8"),
			g.Div(
				g.Class("mb-4 flex items-center gap-3"),
				g.Img(g.Src(p.Avatar), g.Alt(p.Name), g.Class("h-12 w-12 rounded-full border-2 border-blue-500 object-cover")),
				g.Div(
					g.H3(g.Class("font-medium"), cmp.Text(p.Name)),
					g.P(g.Class("text-xs text-gray-500"), cmp.Text(p.Rank)),
				),
			),
			g.Div(g.Class("mb-1 h-2 rounded-full bg-gray-200"),
				g.Div(g.Class("h-full rounded-full bg-blue-500"), g.Style("width: "+strconv.Itoa(p.LevelProgress)+"%"))),
			g.P(g.Class("text-xs text-gray-500"),
				cmp.Text(Percent(p.LevelProgress)+" to Level "+strconv.Itoa(p.Level+1))),
		),
		g.Nav(
			g.Class("space-y-1"),
			cmp.Map(d.Links, func(l catalog.Link) cmp.Node {
				return g.A(
					g.Href(l.Href),
					g.Class("flex items-center gap-3 rounded-md px-3 py-2 text-sm hover:bg-gray-100"),
					g.Data("icon", l.Icon),
					cmp.Text(l.Label),
				)
			}),
		),
	)
}

func statCards(stats []catalog.Stat) []cmp.Node {
	nodes := make([]cmp.Node, len(stats))
	for i, s := range stats {
		nodes[i] = StatCard(live.StatTarget(i), s)
	}
	return nodes
}

// StatCard renders a stats card whose blurred background circles are sized
// from the card's dimension. target identifies the card on the live channel.
func StatCard(target string, s catalog.Stat) cmp.Node {
	circles := layout.Circles(StatCardSize, s.Colors, layout.SeedFor(target))
	return g.Div(
		g.Class("relative h-full overflow-hidden rounded-lg border bg-white"),
		g.Data("observe", target),
		g.Div(
			g.Class("absolute inset-0 overflow-hidden blur-2xl"),
			cmp.Map(circles, Circle),
		),
		g.Div(
			g.Class("relative z-10 flex h-full flex-col p-4 backdrop-blur-sm"),
			g.Div(
				g.Class("mb-2 flex items-center gap-2"),
				g.Span(g.Class("rounded-md bg-white/50 p-2 text-xs"), g.Data("icon", s.Icon)),
				g.H3(g.Class("text-sm"), cmp.Text(s.Title)),
			),
			g.P(g.Class("mb-1 text-2xl font-medium"), cmp.Text(s.Value)),
			cmp.If(s.Subtitle != "", g.P(g.Class("text-xs text-gray-600"), cmp.Text(s.Subtitle))),
		),
	)
}

// Circle renders one decorative background circle.
func Circle(c layout.Circle) cmp.Node {
	size := geometry.FormatNumber(c.Size)
	return g.Div(
		g.Class("absolute rounded-full opacity-30"),
		g.Data("circle", ""),
		g.Style("background:"+c.Color+";width:"+size+"px;height:"+size+"px;top:"+
			geometry.FormatNumber(c.Top)+"%;left:"+geometry.FormatNumber(c.Left)+"%"),
	)
}

func courseSection(title string, courses []catalog.DashboardCourse, state courseState) cmp.Node {
	if len(courses) == 0 {
		return nil
	}
	return g.Section(
		g.Class("mb-8"),
		g.H2(g.Class("mb-4 text-xl font-semibold"), cmp.Text(title)),
		g.Div(
			g.Class("grid grid-cols-1 gap-4 md:grid-cols-2 lg:grid-cols-3"),
			cmp.Map(courses, func(c catalog.DashboardCourse) cmp.Node { return dashboardCourse(c, state) }),
		),
	)
}

func dashboardCourse(c catalog.DashboardCourse, state courseState) cmp.Node {
	var footer cmp.Node
	switch state {
	case courseInProgress:
		footer = g.Div(g.Class("mt-auto"), ProgressBar(c.Progress))
	case courseCompleted:
		footer = g.Div(g.Class("mt-auto text-sm text-green-600"), cmp.Text("✓ Completed"))
	case courseRecommended:
		footer = g.Button(g.Class("mt-auto w-full rounded-md bg-blue-500 py-2 text-sm text-white hover:bg-blue-600"),
			cmp.Text("Start Learning"))
	}
	return g.Article(
		g.Class("flex flex-col overflow-hidden rounded-lg border bg-white"),
		g.Div(
			g.Class("relative h-36"),
			g.Img(g.Src(c.Thumbnail), g.Alt(c.Title), g.Class("h-full w-full object-cover")),
			cmp.If(state == courseRecommended,
				g.Span(g.Class("absolute right-2 top-2 rounded-full bg-amber-500 px-2 py-1 text-xs text-white"), cmp.Text("★ Recommended"))),
		),
		g.Div(
			g.Class("flex flex-1 flex-col p-4"),
			g.H3(g.Class("mb-1 font-semibold"), cmp.Text(c.Title)),
			g.P(g.Class("mb-3 text-sm text-gray-500"), cmp.Text("by "+c.Instructor)),
			footer,
		),
	)
}
