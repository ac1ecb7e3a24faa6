package view

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/ytu/internal/catalog"
)

// Courses is the course catalog grid.
func Courses(courses []catalog.Course) cmp.Node {
	return g.Section(
		g.Class("mx-auto max-w-7xl px-4 py-12"),
		g.Div(
			g.Class("mb-8 flex items-end justify-between"),
			g.H1(g.Class("text-3xl font-bold"), cmp.Text("Explore Courses")),
			g.Span(g.Class("text-sm text-gray-500"), cmp.Text("Showing "+Count(len(courses), "courses"))),
		),
		g.Div(
			g.Class("grid grid-cols-1 gap-6 sm:grid-cols-2 lg:grid-cols-3"),
			cmp.Map(courses, CourseCard),
		),
	)
}

// CourseCard renders one course with its progress bar.
func CourseCard(c catalog.Course) cmp.Node {
	return g.Article(
		g.Class("overflow-hidden rounded-xl bg-white shadow-sm transition hover:shadow-md"),
		g.Data("course", strconv.Itoa(c.ID)),
		g.Img(g.Src(c.Thumbnail), g.Alt(c.Title), g.Class("h-44 w-full object-cover")),
		g.Div(
			g.Class("p-5"),
			g.Span(g.Class("mb-2 inline-block rounded-full bg-indigo-100 px-3 py-1 text-xs font-medium text-indigo-700"),
				cmp.Text(c.Category)),
			g.H3(g.Class("mb-1 text-lg font-semibold"), cmp.Text(c.Title)),
			g.P(g.Class("mb-4 text-sm text-gray-500"), cmp.Text(c.Instructor+" · "+c.Duration)),
			ProgressBar(c.Progress),
		),
	)
}

// ProgressBar renders a 0-100 progress bar with its label.
func ProgressBar(progress int) cmp.Node {
	label := Percent(progress)
	return g.Div(
		g.Div(
			g.Class("mb-1 flex justify-between text-xs text-gray-500"),
			g.Span(cmp.Text("Progress")),
			g.Span(cmp.Text(label)),
		),
		g.Div(
			g.Class("h-2 w-full rounded-full bg-gray-200"),
			g.Div(g.Class("h-2 rounded-full bg-indigo-600"), g.Style("width: "+strconv.Itoa(progress)+"%")),
		),
	)
}
