package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
)

// templNode renders a templ component inside a gomponents tree.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (n templNode) Render(w io.Writer) error {
	return n.component.Render(n.ctx, w)
}

// Templ converts a templ component into a gomponents node. Gomponents does
// not pass a context when rendering, so the component gets ctx.
func Templ(ctx context.Context, component templ.Component) cmp.Node {
	return templNode{ctx: ctx, component: component}
}
