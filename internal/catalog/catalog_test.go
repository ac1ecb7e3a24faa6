package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/pubsub"
)

func TestDefault_EmbeddedCatalogIsValid(t *testing.T) {
	c := Default()

	assert.Len(t, c.Courses, 6)
	assert.Equal(t, "Sarah Johnson", c.Courses[0].Instructor)
	assert.Equal(t, []string{"frontend", "gamedev", "anime"}, c.PathIDs())

	for _, p := range c.Paths {
		assert.Len(t, p.Nodes, 6, p.ID)
		assert.Len(t, p.Connections, 6, p.ID)
		style := p.BeamStyle()
		assert.Equal(t, 3.0, style.PathWidth)
		assert.Equal(t, "#ff6b6b", style.GradientStart)
		assert.Equal(t, 5*time.Second, style.Duration)
	}

	d := c.Dashboard
	require.NotNil(t, d)
	assert.Equal(t, "Anime Student", d.Profile.Name)
	assert.Len(t, d.Stats, 3)
	assert.Equal(t, []string{"#3B82F6", "#60A5FA", "#93C5FD"}, d.Stats[0].Colors)
	assert.Len(t, d.InProgress, 3)
	assert.Len(t, d.Completed, 2)
	assert.Len(t, d.Recommended, 2)
}

func TestCatalog_Path(t *testing.T) {
	c := Default()

	p, err := c.Path("gamedev")
	require.NoError(t, err)
	assert.Equal(t, "Game Development Path", p.Title)
	assert.Equal(t, 2, p.NodeIndex("unity"))
	assert.Equal(t, -1, p.NodeIndex("nope"))

	opts := p.BeamOptions(p.Connections[3])
	assert.Equal(t, beam.Options{Curvature: -50, Curve: beam.CurveVertical}, opts)

	_, err = c.Path("cooking")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

const minimal = `
paths:
  - id: demo
    title: Demo
    nodes:
      - { id: a, title: A }
      - { id: b, title: B }
    connections:
      - { from: a, to: b, curvature: 20 }
`

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", minimal + "extra: 1\n", "extra"},
		{"dangling connection", strings.Replace(minimal, "to: b", "to: c", 1), "unknown node"},
		{"self loop", strings.Replace(minimal, "to: b", "to: a", 1), "itself"},
		{"duplicate node", strings.Replace(minimal, "id: b", "id: a", 1), "duplicate node"},
		{"bad curve", strings.Replace(minimal, "title: Demo", "title: Demo\n    curve: sideways", 1), "oneof"},
		{"no paths", "courses: []\n", "min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Minimal(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)
	p := c.DefaultPath()
	require.NotNil(t, p)
	assert.Equal(t, beam.DefaultStyle(), p.BeamStyle())
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (r *recordingPublisher) Publish(_ context.Context, msg pubsub.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestReloader_ValidAndInvalidFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/ytu/catalog.yaml", []byte(minimal), 0o644))

	store := NewStore(Default())
	pub := &recordingPublisher{}
	r := NewReloader(store, fs, "/etc/ytu/catalog.yaml", pub)

	require.NoError(t, r.Reload(context.Background()))
	assert.Equal(t, uint64(1), store.Version())
	assert.Equal(t, []string{"demo"}, store.Get().PathIDs())
	require.Equal(t, 1, pub.count())

	ev, err := Reloaded.Decode(pub.msgs[0])
	require.NoError(t, err)
	assert.Equal(t, ReloadedEvent{Version: 1, Paths: []string{"demo"}, Source: "/etc/ytu/catalog.yaml"}, ev)

	require.NoError(t, afero.WriteFile(fs, "/etc/ytu/catalog.yaml", []byte("paths: [oops"), 0o644))
	err = r.Reload(context.Background())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, []string{"demo"}, store.Get().PathIDs(), "previous catalog kept")
	assert.Equal(t, 1, pub.count())
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, Embedded(), 0o644))

	store := NewStore(Default())
	pub := &recordingPublisher{}
	w := NewWatcher(NewReloader(store, afero.NewOsFs(), path, pub), path, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// give the watcher a moment to register the directory
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o644))

	assert.Eventually(t, func() bool {
		return store.Get().PathIDs()[0] == "demo"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return pub.count() >= 1 }, time.Second, 10*time.Millisecond)
}
