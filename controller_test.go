package vscroll_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-theft-auto/vscroll"
)

func newTestController(t *testing.T, opts ...vscroll.Option) *vscroll.Controller {
	t.Helper()
	c, err := vscroll.NewController(opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	t.Cleanup(c.Destroy)
	return c
}

func TestNewControllerValidation(t *testing.T) {
	var cerr *vscroll.ConfigurationError

	_, err := vscroll.NewController(
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
	)
	if !errors.As(err, &cerr) || cerr.Field != "containerExtent" {
		t.Errorf("missing container extent: err = %v", err)
	}

	_, err = vscroll.NewController(
		vscroll.WithTotal(100),
		vscroll.WithContainerExtent(100),
	)
	if !errors.As(err, &cerr) || cerr.Field != "sizing" {
		t.Errorf("missing sizing: err = %v", err)
	}

	_, err = vscroll.NewController(
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(-5),
	)
	if !errors.As(err, &cerr) {
		t.Errorf("negative container extent: err = %v", err)
	}
}

func TestScrollByAccumulatesAndClamps(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.ScrollBy(50)
	c.ScrollBy(50)
	if got := c.Position(); got != 100 {
		t.Errorf("position = %v, want 100", got)
	}

	c.ScrollBy(-1e9)
	if got := c.Position(); got != 0 {
		t.Errorf("position after huge negative delta = %v, want 0", got)
	}

	c.ScrollBy(1e9)
	if got := c.Position(); got != 1900 {
		t.Errorf("position after huge positive delta = %v, want max scroll 1900", got)
	}
}

func TestMovementCallback(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	var moves []vscroll.Movement
	c.OnMovement(func(m vscroll.Movement) { moves = append(moves, m) })

	c.ScrollBy(40)
	c.ScrollBy(-10)

	if len(moves) != 2 {
		t.Fatalf("got %d movements, want 2", len(moves))
	}
	if moves[0].Position != 40 || moves[0].Direction != 1 {
		t.Errorf("first movement = %+v, want pos 40 dir +1", moves[0])
	}
	if moves[1].Position != 30 || moves[1].Direction != -1 {
		t.Errorf("second movement = %+v, want pos 30 dir -1", moves[1])
	}

	vp := c.Viewport()
	if vp.VisibleRange.Start != 1 {
		t.Errorf("visible start = %d, want 1", vp.VisibleRange.Start)
	}
}

func TestScrollToIndexClamps(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.ScrollToIndex(150, vscroll.AlignStart, false)
	if got := c.Position(); got != 1900 {
		t.Errorf("position after overflow index = %v, want 1900", got)
	}
	c.ScrollToIndex(-10, vscroll.AlignStart, false)
	if got := c.Position(); got != 0 {
		t.Errorf("position after negative index = %v, want 0", got)
	}
}

func TestScrollToIndexWraps(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
		vscroll.WithWrap(),
	)

	// -1 wraps to the last item, 105 wraps to item 5.
	c.ScrollToIndex(-1, vscroll.AlignEnd, false)
	if !c.Viewport().VisibleRange.Contains(99) {
		t.Errorf("item 99 not visible after wrapping -1, range %+v", c.Viewport().VisibleRange)
	}
	c.ScrollToIndex(105, vscroll.AlignStart, false)
	if got := c.Position(); got != 100 {
		t.Errorf("position after wrapping 105 = %v, want 100", got)
	}
}

func TestResizeReclamps(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.MoveTo(1900, false)
	c.Resize(500)
	if got := c.Position(); got != 1500 {
		t.Errorf("position after growing container = %v, want re-clamped 1500", got)
	}

	// Bogus extents are ignored.
	c.Resize(0)
	if got := c.Viewport().ContainerExtent; got != 500 {
		t.Errorf("container extent = %v, want 500", got)
	}
}

func TestSetTotalCrossesCompressionThreshold(t *testing.T) {
	// 100k rows of 48 units is 4.8M, under the cap; 1M rows is 48M, over
	// it. The start index must survive the regime switch exactly.
	c := newTestController(t,
		vscroll.WithTotal(100_000),
		vscroll.WithFixedHeight(48),
		vscroll.WithContainerExtent(600),
	)
	if c.Compression().Compressed {
		t.Fatal("unexpectedly compressed at 4.8M extent")
	}

	c.ScrollToIndex(10_000, vscroll.AlignStart, false)
	if got := c.Viewport().VisibleRange.Start; got != 10_000 {
		t.Fatalf("visible start = %d, want 10000", got)
	}

	c.SetTotal(1_000_000)
	if !c.Compression().Compressed {
		t.Fatal("not compressed at 48M extent")
	}
	if got := c.Viewport().VisibleRange.Start; got != 10_000 {
		t.Errorf("visible start after regime switch = %d, want 10000", got)
	}

	c.SetTotal(100_000)
	if c.Compression().Compressed {
		t.Fatal("still compressed after shrinking back")
	}
	if got := c.Viewport().VisibleRange.Start; got != 10_000 {
		t.Errorf("visible start after switching back = %d, want 10000", got)
	}
}

func TestSetModeForcesRegime(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(1_000_000),
		vscroll.WithFixedHeight(48),
		vscroll.WithContainerExtent(600),
	)
	if !c.Compression().Compressed {
		t.Fatal("expected compressed start state")
	}
	c.ScrollToIndex(250_000, vscroll.AlignStart, false)

	m := c.Mode()
	m.Regime = vscroll.RegimeNative
	c.SetMode(m)

	if c.Compression().Compressed {
		t.Fatal("regime force to native did not stick")
	}
	if got := c.Viewport().VisibleRange.Start; got != 250_000 {
		t.Errorf("visible start after forcing native = %d, want 250000", got)
	}
	if got := c.Position(); got != 12_000_000 {
		t.Errorf("position in native space = %v, want 12000000", got)
	}
}

func TestAnimatedScrollSettles(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.MoveTo(1000, true)
	if got := c.Position(); got != 0 {
		t.Fatalf("animated MoveTo jumped immediately to %v", got)
	}

	prev := 0.0
	for i := 0; i < 1000 && c.Position() != 1000; i++ {
		c.Tick(0.016)
		pos := c.Position()
		if pos < prev {
			t.Fatalf("animation moved backward: %v -> %v", prev, pos)
		}
		prev = pos
	}
	if got := c.Position(); got != 1000 {
		t.Errorf("animation never settled, position = %v", got)
	}
}

func TestAnimationSnapsOnLargeStep(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.MoveTo(1000, true)
	// dt*smoothSpeed >= 1 would overshoot; the step snaps instead.
	c.Tick(0.1)
	if got := c.Position(); got != 1000 {
		t.Errorf("position after oversized step = %v, want snapped 1000", got)
	}
}

func TestScrollByCancelsAnimation(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.MoveTo(1000, true)
	c.Tick(0.016)
	c.ScrollBy(5)
	pos := c.Position()
	c.Tick(0.016)
	if got := c.Position(); got != pos {
		t.Errorf("cancelled animation still advanced: %v -> %v", pos, got)
	}
}

func TestIdleFiresOncePerPause(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
		vscroll.WithIdleTimeout(20*time.Millisecond),
	)

	idle := make(chan struct{}, 8)
	c.OnIdle(func() { idle <- struct{}{} })

	c.ScrollBy(10)
	c.ScrollBy(10)
	c.ScrollBy(10)

	select {
	case <-idle:
	case <-time.After(time.Second):
		t.Fatal("idle callback never fired")
	}
	select {
	case <-idle:
		t.Fatal("idle fired more than once for a single pause")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNoIdleAfterDestroy(t *testing.T) {
	c, err := vscroll.NewController(
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
		vscroll.WithIdleTimeout(20*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}

	idle := make(chan struct{}, 8)
	c.OnIdle(func() { idle <- struct{}{} })

	c.ScrollBy(10)
	c.Destroy()
	c.Destroy() // Idempotent

	select {
	case <-idle:
		t.Fatal("idle fired after Destroy")
	case <-time.After(100 * time.Millisecond):
	}

	// Post-destroy operations are no-ops.
	c.ScrollBy(100)
	if got := c.Position(); got != 10 {
		t.Errorf("position moved after Destroy: %v", got)
	}
}

func TestThrottleCoalescesMovements(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
		vscroll.WithThrottleInterval(time.Hour),
	)

	var moves []vscroll.Movement
	c.OnMovement(func(m vscroll.Movement) { moves = append(moves, m) })

	// The first movement flushes immediately; the burst behind it is
	// folded into a single pending recompute.
	c.ScrollBy(10)
	c.ScrollBy(10)
	c.ScrollBy(10)
	if len(moves) != 1 {
		t.Fatalf("got %d movements during burst, want 1", len(moves))
	}

	// Position is authoritative even while the flush is deferred.
	if got := c.Position(); got != 30 {
		t.Errorf("position = %v, want 30", got)
	}

	c.Tick(0.016)
	if len(moves) != 2 {
		t.Fatalf("got %d movements after tick, want 2", len(moves))
	}
	if moves[1].Position != 30 {
		t.Errorf("flushed position = %v, want 30", moves[1].Position)
	}
	if got := c.Viewport().VisibleRange.Start; got != 1 {
		t.Errorf("visible start after flush = %d, want 1", got)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.MoveTo(130, false) // Item 6 plus 10 units into it
	snap := c.Snapshot()
	if snap.Index != 6 || snap.OffsetInItem != 10 {
		t.Fatalf("snapshot = %+v, want index 6 offset 10", snap)
	}

	c.MoveTo(1900, false)
	c.Restore(snap)
	if got := c.Position(); got != 130 {
		t.Errorf("restored position = %v, want 130", got)
	}
}

func TestSnapshotRestoreCompressed(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(1_000_000),
		vscroll.WithFixedHeight(48),
		vscroll.WithContainerExtent(600),
	)
	if !c.Compression().Compressed {
		t.Fatal("expected compression")
	}

	c.MoveTo(5_000_000, false)
	snap := c.Snapshot()

	c.MoveTo(0, false)
	c.Restore(snap)
	if got := c.Position(); math.Abs(got-5_000_000) > 1e-6 {
		t.Errorf("restored position = %v, want 5000000", got)
	}
	if got := c.Viewport().VisibleRange.Start; got != snap.Index {
		t.Errorf("restored visible start = %d, want %d", got, snap.Index)
	}
}

func TestVelocityThroughController(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(100),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	if c.Tracking() {
		t.Error("tracking before any movement")
	}
	c.ScrollBy(10)
	time.Sleep(2 * time.Millisecond)
	c.ScrollBy(10)
	time.Sleep(2 * time.Millisecond)
	c.ScrollBy(10)

	if !c.Tracking() {
		t.Error("not tracking after three quick movements")
	}
	if v := c.Velocity(); v <= 0 {
		t.Errorf("velocity = %v, want positive", v)
	}
}

func TestEmptyCollection(t *testing.T) {
	c := newTestController(t,
		vscroll.WithTotal(0),
		vscroll.WithFixedHeight(20),
		vscroll.WithContainerExtent(100),
	)

	c.ScrollBy(100)
	if got := c.Position(); got != 0 {
		t.Errorf("position on empty collection = %v, want 0", got)
	}
	c.ScrollToIndex(5, vscroll.AlignStart, false)
	if !c.Viewport().VisibleRange.IsEmpty() {
		t.Errorf("visible range = %+v, want empty", c.Viewport().VisibleRange)
	}
	if got := c.HeightOfIndex(0); got != 0 {
		t.Errorf("HeightOfIndex on empty collection = %v, want 0", got)
	}
}
