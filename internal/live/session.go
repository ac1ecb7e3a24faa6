package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/coder/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/dimension"
	"github.com/nfrund/ytu/internal/eventloop"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/signal"
	"github.com/nfrund/ytu/internal/surface"
)

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
	readLimit    = 64 << 10
)

// StatTarget is the target name of the i-th dashboard stats card.
func StatTarget(i int) string {
	return "stat-" + strconv.Itoa(i)
}

// Session is one browser tab. All view state is owned by the session's
// event loop; only the outbound queue is shared with other goroutines.
type Session struct {
	id      string
	catalog *catalog.Store
	grid    layout.Grid
	delay   time.Duration
	logger  *slog.Logger

	loop   *eventloop.Loop
	resize *signal.Signal

	outMu  sync.Mutex
	out    chan []byte
	closed bool

	// loop-owned
	sent      map[string]uint64
	viewport  float64
	scene     *diagram.Scene
	flush     *signal.Invalidator
	container *dimension.Observer
	auto      bool
	cards     map[string]*card
}

type card struct {
	ref    *surface.Ref
	obs    *dimension.Observer
	colors []string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebounce sets the resize debounce of the session's observers.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) {
		s.delay = d
	}
}

// WithGrid sets the layout used when the browser reports no node boxes.
func WithGrid(g layout.Grid) SessionOption {
	return func(s *Session) {
		s.grid = g
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session reading content from store.
func NewSession(id string, store *catalog.Store, opts ...SessionOption) *Session {
	s := &Session{
		id:      id,
		catalog: store,
		grid:    layout.Default(),
		delay:   dimension.DefaultDelay,
		resize:  signal.New(),
		out:     make(chan []byte, sendBuffer),
		sent:    make(map[string]uint64),
		cards:   make(map[string]*card),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "live", "session", id)
	}
	s.loop = eventloop.New(eventloop.WithName("session-"+id), eventloop.WithLogger(s.logger))
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Outbox returns the queue of encoded server frames.
func (s *Session) Outbox() <-chan []byte { return s.out }

// Deliver queues an encoded frame without blocking. It reports false when
// the session is closed or its queue is full.
func (s *Session) Deliver(frame []byte) bool {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.out <- frame:
		return true
	default:
		s.logger.Warn("Session send queue full, dropping frame")
		return false
	}
}

// Close closes the outbound queue. Further deliveries are dropped.
func (s *Session) Close() {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.out)
	}
}

// Run drives the session's event loop until ctx ends.
func (s *Session) Run(ctx context.Context) error {
	err := s.loop.Run(ctx)
	s.teardown()
	return err
}

// Handle queues a decoded client frame for the event loop.
func (s *Session) Handle(f ClientFrame) bool {
	return s.loop.Post(func() { s.handle(f) })
}

// Do runs fn on the session's loop and waits for it.
func (s *Session) Do(ctx context.Context, fn func()) error {
	return s.loop.Do(ctx, fn)
}

var errClientGone = errors.New("client closed the connection")

// Serve pumps frames between conn and the session until either side stops.
func (s *Session) Serve(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(readLimit)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(gctx) })
	g.Go(func() error { return s.writePump(gctx, conn) })
	g.Go(func() error { return s.readPump(gctx, conn) })

	err := g.Wait()
	if errors.Is(err, errClientGone) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readPump decodes client frames and posts them to the loop.
func (s *Session) readPump(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, io.EOF) {
				s.logger.Debug("WebSocket closed by client")
				return errClientGone
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read: %w", err)
		}

		f, err := DecodeClientFrame(data)
		if err != nil {
			s.logger.Debug("Rejected client frame", "error", err)
			s.deliverJSON(ErrorFrame{Type: FrameError, Message: err.Error()})
			continue
		}
		s.Handle(f)
	}
}

// writePump writes queued frames to the connection.
func (s *Session) writePump(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close(websocket.StatusNormalClosure, "Server-side cleanup")
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-s.out:
			if !ok {
				return errClientGone
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (s *Session) deliverJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode frame", "error", err)
		return
	}
	s.Deliver(data)
}

// send delivers v unless it is identical to the last frame sent under key.
// Runs on the loop.
func (s *Session) send(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode frame", "key", key, "error", err)
		return
	}
	sum := xxhash.Sum64(data)
	if prev, ok := s.sent[key]; ok && prev == sum {
		return
	}
	s.sent[key] = sum
	s.Deliver(data)
}

func (s *Session) handle(f ClientFrame) {
	switch f.Type {
	case FrameMount:
		s.teardown()
		s.viewport = f.Viewport
		switch f.View {
		case ViewPath:
			s.mountPath(f)
		case ViewDashboard:
			s.mountDashboard(f)
		}
	case FrameResize:
		if f.Viewport > 0 {
			s.viewport = f.Viewport
		}
		s.applyBoxes(f)
		s.resize.Emit()
	case FrameObserve:
		s.applyBoxes(f)
	case FrameUnmount:
		s.teardown()
	}
}

func (s *Session) mountPath(f ClientFrame) {
	cat := s.catalog.Get()
	path := cat.DefaultPath()
	if f.Path != "" {
		p, err := cat.Path(f.Path)
		if err != nil {
			s.deliverJSON(ErrorFrame{Type: FrameError, Message: err.Error()})
			return
		}
		path = p
	}
	if path == nil {
		return
	}

	s.flush = signal.NewInvalidator(s.loop, s.flushBeams)
	s.scene = diagram.NewScene(path, s.loop,
		diagram.WithIDGenerator(beam.Sequence("beam-"+path.ID)),
		diagram.WithOnChange(func(diagram.Beam) { s.flush.Invalidate() }),
		diagram.WithLogger(s.logger),
	)
	s.auto = len(f.Boxes) == 0
	s.scene.SetBoxes(f.Container, f.Boxes)
	s.scene.Mount()

	s.container = dimension.New(s.scene.Container(), s.resize, s.loop,
		dimension.WithDelay(s.delay),
		dimension.WithOnChange(s.relayout),
		dimension.WithLogger(s.logger),
	)
	s.container.Mount()
	s.logger.Debug("Mounted path view", "path", path.ID, "auto_layout", s.auto)
}

// relayout places the nodes with the grid when the browser leaves layout
// to the server.
func (s *Session) relayout(dim geometry.Dimension) {
	if !s.auto || s.scene == nil {
		return
	}
	box, _ := s.scene.Container().Box()
	viewport := s.viewport
	if viewport == 0 {
		viewport = dim.Width
	}
	s.scene.Apply(s.grid.Place(box.Origin(), dim.Width, viewport, len(s.scene.NodeIDs())))
}

func (s *Session) flushBeams() {
	if s.scene == nil {
		return
	}
	s.send(FrameBeams, NewBeamsFrame(s.scene.Path().ID, s.scene.Style(), s.scene.Snapshot()))
}

func (s *Session) mountDashboard(f ClientFrame) {
	d := s.catalog.Get().Dashboard
	if d == nil {
		return
	}
	for i, stat := range d.Stats {
		target := StatTarget(i)
		c := &card{ref: surface.NewRef(target), colors: stat.Colors}
		c.obs = dimension.New(c.ref, s.resize, s.loop,
			dimension.WithDelay(s.delay),
			dimension.WithOnChange(func(dim geometry.Dimension) { s.sendDimensions(target, c, dim) }),
			dimension.WithLogger(s.logger.With("target", target)),
		)
		if box, ok := f.Boxes[target]; ok {
			c.ref.Mount(box)
		}
		s.cards[target] = c
		c.obs.Mount()
	}
}

func (s *Session) sendDimensions(target string, c *card, dim geometry.Dimension) {
	s.send(FrameDimensions+":"+target, DimensionsFrame{
		Type:    FrameDimensions,
		Target:  target,
		Width:   dim.Width,
		Height:  dim.Height,
		Circles: layout.Circles(dim, c.colors, layout.SeedFor(target)),
	})
}

// applyBoxes records reported boxes. Beams follow immediately; card sizes
// wait for the next resize, except for cards seen for the first time.
func (s *Session) applyBoxes(f ClientFrame) {
	if s.scene != nil {
		if f.Container != nil || !s.auto {
			nodes := f.Boxes
			if s.auto {
				nodes = nil
			}
			s.scene.SetBoxes(f.Container, nodes)
		}
		return
	}
	for target, box := range f.Boxes {
		c := s.cards[target]
		if c == nil {
			continue
		}
		first := !c.ref.Mounted()
		c.ref.Set(box)
		if first {
			c.obs.Measure()
		}
	}
}

// teardown unmounts the current view. Runs on the loop, or after it stopped.
func (s *Session) teardown() {
	if s.scene != nil {
		s.container.Unmount()
		s.scene.Unmount()
		s.flush.Cancel()
		s.scene, s.container, s.flush = nil, nil, nil
	}
	for target, c := range s.cards {
		c.obs.Unmount()
		c.ref.Unmount()
		delete(s.cards, target)
	}
	clear(s.sent)
	s.auto = false
}

// Listeners returns the number of resize listeners, for diagnostics.
func (s *Session) Listeners() int {
	return s.resize.Len()
}
