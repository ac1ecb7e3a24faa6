package view

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Icon is a 24x24 outline icon given by its path data.
type Icon []string

var (
	IconHome      = Icon{"m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z", "M9 22V12h6v10"}
	IconBookOpen  = Icon{"M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z", "M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"}
	IconMap       = Icon{"M3 6l6-3 6 3 6-3v15l-6 3-6-3-6 3z", "M9 3v15", "M15 6v15"}
	IconDashboard = Icon{"M3 3h7v9H3z", "M14 3h7v5h-7z", "M14 12h7v9h-7z", "M3 16h7v5H3z"}
	IconSearch    = Icon{"M11 3a8 8 0 1 0 0 16 8 8 0 0 0 0-16z", "m21 21-4.3-4.3"}
)

// SVG renders the icon at size pixels.
func (i Icon) SVG(size int, class string) cmp.Node {
	return cmp.El("svg",
		cmp.Attr("xmlns", "http://www.w3.org/2000/svg"),
		cmp.Attr("width", strconv.Itoa(size)),
		cmp.Attr("height", strconv.Itoa(size)),
		cmp.Attr("viewBox", "0 0 24 24"),
		cmp.Attr("fill", "none"),
		cmp.Attr("stroke", "currentColor"),
		cmp.Attr("stroke-width", "2.5"),
		cmp.Attr("stroke-linecap", "round"),
		cmp.Attr("stroke-linejoin", "round"),
		cmp.Attr("aria-hidden", "true"),
		cmp.If(class != "", g.Class(class)),
		cmp.Map(i, func(d string) cmp.Node {
			return cmp.El("path", cmp.Attr("d", d))
		}),
	)
}
