package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/goccy/go-graphviz"

	"github.com/nfrund/ytu/internal/catalog"
)

var borderColors = map[string]string{
	"pink":   "#ec4899",
	"yellow": "#eab308",
	"blue":   "#3b82f6",
	"purple": "#a855f7",
	"green":  "#22c55e",
	"orange": "#f97316",
	"red":    "#ef4444",
}

// BorderColor maps a node color name to its hex value, defaulting to blue.
func BorderColor(name string) string {
	if c, ok := borderColors[name]; ok {
		return c
	}
	return borderColors["blue"]
}

// ToDOT converts a learning path to Graphviz DOT. Curvature is expressed as
// the edge's port side so that bent beams stay visually distinct.
func ToDOT(path *catalog.Path) string {
	style := path.BeamStyle()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", path.ID)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", path.Title)
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, penwidth=2, fontname=\"Helvetica\"];\n")
	fmt.Fprintf(&buf, "  edge [color=\"%s:%s\", penwidth=%g];\n", style.GradientStart, style.GradientStop, style.PathWidth)
	buf.WriteString("\n")

	for _, n := range path.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q, color=%q, tooltip=%q];\n", n.ID, n.Title, BorderColor(n.Color), n.Description)
	}

	buf.WriteString("\n")
	for _, c := range path.Connections {
		attrs := ""
		switch {
		case c.Curvature > 0:
			attrs = " [tailport=n, headport=n]"
		case c.Curvature < 0:
			attrs = " [tailport=s, headport=s]"
		}
		if c.Reverse {
			attrs += " [dir=back]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", c.From, c.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return stripProlog(buf.Bytes()), nil
}

var prologRe = regexp.MustCompile(`(?s)^.*?(<svg)`)

// stripProlog drops the XML declaration and doctype so the SVG can be
// embedded in an HTML document.
func stripProlog(svg []byte) []byte {
	return prologRe.ReplaceAll(svg, []byte("$1"))
}
