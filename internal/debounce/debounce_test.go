package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_LatestWins(t *testing.T) {
	sched := NewManualScheduler()
	var firedAt []time.Duration
	d := New(sched, 200*time.Millisecond, func() { firedAt = append(firedAt, sched.Now()) })

	d.Trigger()
	sched.Advance(100 * time.Millisecond)
	d.Trigger()
	sched.Advance(150 * time.Millisecond)
	d.Trigger()

	assert.Empty(t, firedAt, "nothing fires inside the window")
	assert.Equal(t, 1, sched.Pending(), "only the latest timer survives")

	sched.Advance(200 * time.Millisecond)
	assert.Equal(t, []time.Duration{450 * time.Millisecond}, firedAt)
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateWindowsFireSeparately(t *testing.T) {
	sched := NewManualScheduler()
	calls := 0
	d := New(sched, 50*time.Millisecond, func() { calls++ })

	d.Trigger()
	sched.Advance(60 * time.Millisecond)
	d.Trigger()
	sched.Advance(60 * time.Millisecond)

	assert.Equal(t, 2, calls)
}

func TestDebouncer_ZeroDelayIsImmediate(t *testing.T) {
	sched := NewManualScheduler()
	calls := 0
	d := New(sched, 0, func() { calls++ })

	d.Trigger()
	d.Trigger()

	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, sched.Pending())
}

func TestDebouncer_CancelPreventsCall(t *testing.T) {
	sched := NewManualScheduler()
	calls := 0
	d := New(sched, 200*time.Millisecond, func() { calls++ })

	d.Trigger()
	d.Cancel()
	sched.Advance(time.Second)

	assert.Equal(t, 0, calls)
	assert.False(t, d.Pending())
}

// stubbornTimer ignores Stop, modelling a timer that fired concurrently
// with cancellation.
type stubbornTimer struct{}

func (stubbornTimer) Stop() bool { return false }

type stubbornScheduler struct{ fns []func() }

func (s *stubbornScheduler) AfterFunc(_ time.Duration, fn func()) Timer {
	s.fns = append(s.fns, fn)
	return stubbornTimer{}
}

func TestDebouncer_CancelWinsOverAlreadyFiredTimer(t *testing.T) {
	sched := &stubbornScheduler{}
	calls := 0
	d := New(sched, time.Second, func() { calls++ })

	d.Trigger()
	d.Trigger()
	d.Cancel()
	for _, fn := range sched.fns {
		fn()
	}

	assert.Equal(t, 0, calls)
}
