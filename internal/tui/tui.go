// Package tui previews learning paths in the terminal. The terminal window
// plays the role of the diagram container: its size is observed, the grid
// lays the nodes out in braille micro-pixels and the beams are drawn from the
// same geometry the web page uses.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/eventloop"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
)

// Rows taken by the title, status and help lines.
const chromeRows = 3

// GridScale maps page pixels to micro-pixels.
const GridScale = 0.25

const (
	tickInterval = 80 * time.Millisecond
	curveSteps   = 48
)

var (
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")

	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	labelStyle = lipgloss.NewStyle().Bold(true)
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Prev, k.Next, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultKeys() keyMap {
	return keyMap{
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next path")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "previous path")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

type tickMsg time.Time

// Option configures a Model.
type Option func(*config)

type config struct {
	delay  time.Duration
	grid   layout.Grid
	logger *slog.Logger
}

// WithDelay sets the resize debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithGrid sets the layout grid, in micro-pixels.
func WithGrid(g layout.Grid) Option {
	return func(c *config) { c.grid = g }
}

// WithLogger sets the logger. The terminal is busy drawing, so callers
// usually pass a logger writing to a file or io.Discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func newConfig(opts []Option) config {
	cfg := config{
		delay:  100 * time.Millisecond,
		grid:   layout.Default().Scaled(GridScale),
		logger: slog.Default().With("component", "tui"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Model is the bubbletea model of the preview.
type Model struct {
	paths  []catalog.Path
	active int
	loop   *eventloop.Loop
	host   *host

	width  int
	height int
	frame  *Frame
	start  time.Time
	now    time.Time

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// NewModel creates the preview of paths. loop must be running; frames are
// delivered through send, normally tea.Program.Send.
func NewModel(paths []catalog.Path, loop *eventloop.Loop, send func(tea.Msg), opts ...Option) Model {
	cfg := newConfig(opts)
	now := time.Now()
	m := Model{
		paths:   paths,
		loop:    loop,
		host:    newHost(loop, cfg.grid, cfg.delay, send, cfg.logger),
		start:   now,
		now:     now,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if len(paths) > 0 {
		m.show(0)
	}
	return m
}

func (m *Model) show(i int) {
	m.active = i
	p := &m.paths[i]
	h := m.host
	m.loop.Post(func() { h.show(p) })
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tea.Batch(m.spinner.Tick, tick()) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		size := geometry.Dimension{
			Width:  float64(max(msg.Width, 0) * 2),
			Height: float64(max(msg.Height-chromeRows, 0) * 4),
		}
		h := m.host
		m.loop.Post(func() { h.resizeTo(size) })

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next) && len(m.paths) > 0:
			m.show((m.active + 1) % len(m.paths))
		case key.Matches(msg, m.keys.Prev) && len(m.paths) > 0:
			m.show((m.active + len(m.paths) - 1) % len(m.paths))
		}

	case frameMsg:
		f := Frame(msg)
		m.frame = &f

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case spinner.TickMsg:
		if m.frame == nil {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.title())
	b.WriteByte('\n')

	rows := max(m.height-chromeRows, 0)
	if m.frame == nil || m.width == 0 {
		b.WriteString(m.spinner.View() + " measuring terminal…")
		b.WriteString(strings.Repeat("\n", max(rows, 1)))
	} else {
		b.WriteString(m.canvas(m.width, rows).Render(m.styles()))
		b.WriteByte('\n')
	}
	b.WriteString(dimStyle.Render(m.status()))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) title() string {
	if len(m.paths) == 0 {
		return titleStyle.Render("No learning paths")
	}
	p := m.paths[m.active]
	return titleStyle.Render(p.Title) + dimStyle.Render(fmt.Sprintf("  %d/%d  %s", m.active+1, len(m.paths), p.Description))
}

func (m Model) status() string {
	if m.frame == nil {
		return ""
	}
	return fmt.Sprintf("%s · %d nodes · %d beams · %gx%g px",
		m.frame.Path.ID, len(m.frame.Nodes), len(m.frame.Beams), m.frame.Size.Width, m.frame.Size.Height)
}

func (m Model) styles() map[Ink]lipgloss.Style {
	st := m.frame.Style
	return map[Ink]lipgloss.Style{
		InkNode:   dimStyle,
		InkBeam:   lipgloss.NewStyle().Foreground(lipgloss.Color(st.GradientStart)),
		InkMarker: lipgloss.NewStyle().Foreground(lipgloss.Color(st.GradientStop)),
		InkLabel:  labelStyle,
	}
}

// canvas draws the current frame: node outlines, beams, a marker travelling
// along every beam and the node titles.
func (m Model) canvas(cols, rows int) *Canvas {
	c := NewCanvas(cols, rows)
	f := m.frame
	for _, n := range f.Nodes {
		c.Rect(n, InkNode)
	}

	phase := 0.0
	if d := f.Style.Duration; d > 0 {
		phase = float64(m.now.Sub(m.start)%d) / float64(d)
	}
	for _, b := range f.Beams {
		q := beamCurve(b)
		c.Curve(q, curveSteps, InkBeam)
		t := phase
		if b.Reverse {
			t = 1 - phase
		}
		c.Dot(q.Eval(t), InkMarker)
	}

	for i, n := range f.Nodes {
		if i >= len(f.Path.Nodes) {
			break
		}
		label := f.Path.Nodes[i].Title
		width := int(n.Width/2) - 2
		if width <= 0 {
			continue
		}
		if r := []rune(label); len(r) > width {
			label = string(r[:width-1]) + "…"
		}
		col := int(n.X/2) + 1 + (width-len([]rune(label)))/2
		row := int((n.Y + n.Height/2) / 4)
		c.Text(col, row, label)
	}
	return c
}

// beamCurve rebuilds the drawn curve. Reverse beams report swapped end
// points; the curve itself is the same.
func beamCurve(b diagram.Beam) geometry.QuadBez {
	g := b.Geometry
	start, end := g.Start, g.End
	if b.Reverse {
		start, end = end, start
	}
	return geometry.QuadBez{P0: start, P1: g.Control, P2: end}
}

// Run starts the preview and blocks until the user quits or ctx ends.
func Run(ctx context.Context, paths []catalog.Path, opts ...Option) error {
	cfg := newConfig(opts)
	loop := eventloop.New(eventloop.WithName("tui"), eventloop.WithLogger(cfg.logger))
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var program *tea.Program
	send := func(msg tea.Msg) { program.Send(msg) }
	m := NewModel(paths, loop, send, opts...)
	program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go func() { _ = loop.Run(loopCtx) }()
	defer func() {
		_ = loop.Do(context.Background(), m.host.close)
		loop.Stop()
	}()

	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
