package view

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/geometry"
)

// MarkerRadius is the radius of the dot travelling along a beam.
const MarkerRadius = 4

// easeInOut as SMIL key splines.
const easeInOut = "0.42 0 0.58 1"

func num(v float64) string { return geometry.FormatNumber(v) }

func seconds(d time.Duration) string { return num(d.Seconds()) + "s" }

func attr(name, value string) cmp.Node { return cmp.Attr(name, value) }

// Beam renders one connection as an SVG overlay covering the container. The
// path is drawn on with a gradient stroke while a marker travels along it.
func Beam(b diagram.Beam, style beam.Style) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return beamSVG(b, style).Render(w)
	})
}

func beamSVG(b diagram.Beam, style beam.Style) cmp.Node {
	geo := b.Geometry
	width, height := num(geo.ContainerSize.Width), num(geo.ContainerSize.Height)
	dur := seconds(style.Duration)

	dashFrom, keyPoints := "1;0", "0;1"
	if b.Reverse {
		dashFrom, keyPoints = "-1;0", "1;0"
	}

	return cmp.El("svg",
		attr("xmlns", "http://www.w3.org/2000/svg"),
		attr("fill", "none"),
		attr("width", width),
		attr("height", height),
		attr("viewBox", "0 0 "+width+" "+height),
		g.Class("pointer-events-none absolute left-0 top-0 z-0"),
		g.Data("beam", b.Key),
		cmp.El("defs",
			cmp.El("linearGradient",
				g.ID(b.ID),
				attr("x1", "0%"), attr("y1", "0%"), attr("x2", "100%"), attr("y2", "0%"),
				cmp.El("stop", attr("offset", "0%"), attr("stop-color", style.GradientStart)),
				cmp.El("stop", attr("offset", "100%"), attr("stop-color", style.GradientStop)),
			),
		),
		cmp.El("path",
			attr("d", geo.Path),
			attr("stroke", "url(#"+b.ID+")"),
			attr("stroke-width", num(style.PathWidth)),
			attr("stroke-linecap", "round"),
			attr("pathLength", "1"),
			attr("stroke-dasharray", "1"),
			cmp.El("animate",
				attr("attributeName", "stroke-dashoffset"),
				attr("values", dashFrom),
				attr("dur", dur),
				attr("calcMode", "spline"),
				attr("keyTimes", "0;1"),
				attr("keySplines", easeInOut),
				attr("repeatCount", "indefinite"),
			),
		),
		cmp.El("circle",
			attr("r", num(MarkerRadius)),
			attr("fill", style.GradientStart),
			g.Style("filter: drop-shadow(0 0 3px rgba(255, 255, 255, 0.7))"),
			cmp.El("animateMotion",
				attr("dur", dur),
				attr("repeatCount", "indefinite"),
				attr("path", geo.Path),
				attr("keyPoints", keyPoints),
				attr("keyTimes", "0;1"),
				attr("calcMode", "spline"),
				attr("keySplines", easeInOut),
			),
		),
	)
}
