package view

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

type feature struct {
	icon, title, text string
}

var features = []feature{
	{"🎓", "Expert Instructors", "Learn from practitioners who ship real products every day."},
	{"🧭", "Guided Learning Paths", "Follow curated paths that connect every course to the next step."},
	{"📈", "Track Your Progress", "A personal dashboard keeps your streaks, hours and certificates in one place."},
}

// Landing is the home page body.
func Landing(courses int) cmp.Node {
	return cmp.Group{
		g.Section(
			g.Class("bg-gradient-to-br from-indigo-600 via-purple-600 to-pink-500 py-24 text-white"),
			g.Div(
				g.Class("mx-auto max-w-4xl px-4 text-center"),
				g.H1(g.Class("mb-6 text-5xl font-extrabold tracking-tight"), cmp.Text("Learn Without Limits")),
				g.P(g.Class("mb-10 text-xl text-indigo-100"),
					cmp.Text("Master new skills with hands-on courses and learning paths designed by industry experts.")),
				g.Div(
					g.Class("flex flex-wrap justify-center gap-4"),
					g.A(g.Href("/courses"), g.Class("rounded-lg bg-white px-6 py-3 font-semibold text-indigo-600 shadow"),
						cmp.Text("Browse "+Count(courses, "Courses"))),
					g.A(g.Href("/learning-paths"), g.Class("rounded-lg border border-white px-6 py-3 font-semibold"),
						cmp.Text("Explore Learning Paths")),
				),
			),
		),
		g.Section(
			g.Class("mx-auto max-w-6xl px-4 py-20"),
			g.H2(g.Class("mb-12 text-center text-3xl font-bold"), cmp.Text("Why YT University?")),
			g.Div(
				g.Class("grid gap-8 md:grid-cols-3"),
				cmp.Map(features, func(f feature) cmp.Node {
					return g.Div(
						g.Class("rounded-xl bg-white p-8 shadow-sm"),
						g.Div(g.Class("mb-4 text-4xl"), cmp.Text(f.icon)),
						g.H3(g.Class("mb-2 text-xl font-semibold"), cmp.Text(f.title)),
						g.P(g.Class("text-gray-600"), cmp.Text(f.text)),
					)
				}),
			),
		),
		g.Section(
			g.Class("bg-indigo-50 py-16"),
			g.Div(
				g.Class("mx-auto max-w-3xl px-4 text-center"),
				g.H2(g.Class("mb-4 text-3xl font-bold"), cmp.Text("Ready to start learning?")),
				g.P(g.Class("mb-8 text-gray-600"), cmp.Text("Pick up where you left off on your dashboard.")),
				g.A(g.Href("/dashboard"), g.Class("rounded-lg bg-indigo-600 px-6 py-3 font-semibold text-white"),
					cmp.Text("Go to My Dashboard")),
			),
		),
	}
}
