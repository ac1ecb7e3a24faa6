package dimension

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/ytu/internal/debounce"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/signal"
	"github.com/nfrund/ytu/internal/surface"
)

type fixture struct {
	ref     *surface.Ref
	resize  *signal.Signal
	sched   *debounce.ManualScheduler
	changes []geometry.Dimension
}

func newFixture() *fixture {
	return &fixture{
		ref:    surface.NewRef("target"),
		resize: signal.New(),
		sched:  debounce.NewManualScheduler(),
	}
}

func (f *fixture) observer(opts ...Option) *Observer {
	opts = append(opts, WithOnChange(func(d geometry.Dimension) {
		f.changes = append(f.changes, d)
	}))
	return New(f.ref, f.resize, f.sched, opts...)
}

func TestObserver_MeasuresOnMount(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 320, Height: 180})
	o := f.observer()

	assert.True(t, o.Dimension().IsZero(), "zero before the first measurement")

	o.Mount()

	assert.Equal(t, geometry.Dimension{Width: 320, Height: 180}, o.Dimension())
	assert.Len(t, f.changes, 1)
	assert.Equal(t, 1, f.resize.Len(), "exactly one resize listener")
}

func TestObserver_LatestWinsDebounce(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 100, Height: 100})
	o := f.observer()
	o.Mount()

	// resize signals at t=0, 50, 100 with sizes 300, 400, 500
	for i, w := range []float64{300, 400, 500} {
		if i > 0 {
			f.sched.Advance(50 * time.Millisecond)
		}
		f.ref.Set(geometry.Rect{Width: w, Height: 100})
		f.resize.Emit()
	}

	f.sched.Advance(199 * time.Millisecond)
	assert.Equal(t, 100.0, o.Dimension().Width, "still inside the window")

	f.sched.Advance(time.Millisecond)
	assert.Equal(t, 500.0, o.Dimension().Width)
	assert.Equal(t, 300*time.Millisecond, f.sched.Now())
	assert.Len(t, f.changes, 2, "mount plus one debounced measurement")
}

func TestObserver_MeasuresAtFireTime(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 100, Height: 100})
	o := f.observer()
	o.Mount()

	f.ref.Set(geometry.Rect{Width: 200, Height: 100})
	f.resize.Emit()
	f.sched.Advance(100 * time.Millisecond)
	f.ref.Set(geometry.Rect{Width: 250, Height: 120})
	f.sched.Advance(100 * time.Millisecond)

	assert.Equal(t, geometry.Dimension{Width: 250, Height: 120}, o.Dimension())
}

func TestObserver_ZeroDelayMeasuresEverySignal(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 10, Height: 10})
	o := f.observer(WithDelay(0))
	o.Mount()

	f.ref.Set(geometry.Rect{Width: 20, Height: 10})
	f.resize.Emit()
	f.ref.Set(geometry.Rect{Width: 30, Height: 10})
	f.resize.Emit()

	assert.Len(t, f.changes, 3)
	assert.Equal(t, 0, f.sched.Pending())
}

func TestObserver_NoCallbackAfterUnmount(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 100, Height: 100})
	o := f.observer()
	o.Mount()

	f.ref.Set(geometry.Rect{Width: 800, Height: 600})
	f.resize.Emit()
	require.True(t, o.Pending())

	o.Unmount()
	f.sched.Advance(time.Second)
	f.resize.Emit()
	f.sched.Advance(time.Second)

	assert.Len(t, f.changes, 1)
	assert.Equal(t, 100.0, o.Dimension().Width)
	assert.Equal(t, 0, f.resize.Len())
	assert.Equal(t, 0, f.sched.Pending())
}

func TestObserver_RepeatedMountCyclesDoNotLeak(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 100, Height: 100})
	o := f.observer()

	for range 10 {
		o.Mount()
		o.Mount()
		f.resize.Emit()
		o.Unmount()
		o.Unmount()
	}

	assert.Equal(t, 0, f.resize.Len())
	assert.Equal(t, 0, f.sched.Pending())

	o.Mount()
	assert.Equal(t, 1, f.resize.Len())
}

func TestObserver_UnmountedSurfaceIsSilentNoop(t *testing.T) {
	f := newFixture()
	o := f.observer()

	o.Mount()
	assert.True(t, o.Dimension().IsZero())
	assert.Empty(t, f.changes)

	f.ref.Mount(geometry.Rect{Width: 64, Height: 48})
	f.resize.Emit()
	f.sched.Advance(DefaultDelay)
	assert.Equal(t, geometry.Dimension{Width: 64, Height: 48}, o.Dimension())

	f.ref.Unmount()
	f.resize.Emit()
	f.sched.Advance(DefaultDelay)
	assert.Equal(t, geometry.Dimension{Width: 64, Height: 48}, o.Dimension(), "previous value kept")
}

func TestObserver_UnchangedSizeDoesNotNotify(t *testing.T) {
	f := newFixture()
	f.ref.Mount(geometry.Rect{Width: 100, Height: 100})
	o := f.observer()
	o.Mount()

	f.ref.Set(geometry.Rect{X: 40, Y: 40, Width: 100, Height: 100})
	f.resize.Emit()
	f.sched.Advance(DefaultDelay)

	assert.Len(t, f.changes, 1)
}
