package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/ytu/internal/geometry"
)

func TestRef_Lifecycle(t *testing.T) {
	r := NewRef("container")
	_, ok := r.Box()
	assert.False(t, ok)

	changes := 0
	release := r.Observe(func() { changes++ })

	box := geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200}
	r.Mount(box)
	got, ok := r.Box()
	assert.True(t, ok)
	assert.Equal(t, box, got)
	assert.Equal(t, 1, changes)

	r.Set(box)
	assert.Equal(t, 1, changes, "unchanged box does not notify")

	r.Set(box.Translate(5, 0))
	assert.Equal(t, 2, changes)

	r.Unmount()
	assert.False(t, r.Mounted())
	assert.Equal(t, 3, changes)

	release()
	r.Mount(box)
	assert.Equal(t, 3, changes)
	assert.Equal(t, 0, r.Observers())
}

func TestStatic(t *testing.T) {
	s := Static(geometry.Rect{Width: 400, Height: 300})
	box, ok := s.Box()
	assert.True(t, ok)
	assert.Equal(t, 400.0, box.Width)
}
