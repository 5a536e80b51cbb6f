package vscroll

import (
	"sync"
	"time"
)

// Movement is the payload delivered to the movement callback after every
// processed scroll event.
type Movement struct {
	Position  float64 // Authoritative scroll position
	Direction int     // +1 toward the end, -1 toward the start, 0 at rest
	Velocity  float64 // Position units per second over the sample window
}

// DefaultIdleTimeout is how long after the last movement the idle
// callback fires when not configured otherwise.
const DefaultIdleTimeout = 150 * time.Millisecond

// animSmoothSpeed is the exponential approach rate for animated scrolls;
// animThreshold is the remaining distance below which the animation snaps
// to its target.
const (
	animSmoothSpeed = 15.0
	animThreshold   = 0.5
)

// Controller owns the authoritative scroll position for one virtualized
// viewport. It translates raw movement signals into position updates,
// recomputes visible/render ranges, tracks velocity, detects idle, and
// invokes the render callback.
//
// All methods are safe for use from the host event loop plus the internal
// idle timer; state mutates under a single mutex and callbacks are
// delivered outside it.
type Controller struct {
	mu sync.Mutex

	hc   HeightCache
	cs   CompressionState
	vp   ViewportState
	mode Mode

	tracker velocityTracker

	overscan int
	wrap     bool
	capacity float64 // Coordinate cap that triggers compression
	blend    float64 // Near-end blend window (0 = one container extent)

	idleTimeout time.Duration
	throttle    time.Duration

	onMovement func(Movement)
	onIdle     func()

	idleTimer *time.Timer
	destroyed bool

	direction int
	lastFlush time.Time
	pending   bool // A throttled movement awaits its flush

	animActive bool
	animTarget float64

	now func() time.Time
}

// NewController builds a Controller from options. It returns a
// ConfigurationError for structurally invalid configuration: missing
// sizing, or a non-positive container extent. Everything after
// construction clamps instead of failing.
func NewController(opts ...Option) (*Controller, error) {
	o := applyOptions(opts)

	container := GetOpt(o, OptContainerExtent)
	if container <= 0 {
		return nil, configErr("containerExtent", "must be positive")
	}

	total := GetOpt(o, OptTotal)
	if total < 0 {
		total = 0
	}

	var hc HeightCache
	if fn := GetOpt(o, OptSizing); fn != nil {
		hc = NewVariableHeights(fn, total)
	} else if h := GetOpt(o, OptFixedHeight); h > 0 {
		hc = NewFixedHeights(h, total)
	} else {
		return nil, configErr("sizing", "requires WithFixedHeight or WithSizing")
	}

	c := &Controller{
		hc:          hc,
		overscan:    GetOpt(o, OptOverscan),
		wrap:        GetOpt(o, OptWrap),
		capacity:    GetOpt(o, OptCoordinateCap),
		blend:       GetOpt(o, OptBlendWindow),
		idleTimeout: GetOpt(o, OptIdleTimeout),
		throttle:    GetOpt(o, OptThrottleInterval),
		tracker:     newVelocityTracker(GetOpt(o, OptStaleness)),
		now:         time.Now,
	}
	c.mode = Mode{
		Driver: GetOpt(o, OptDriver),
		Axis:   GetOpt(o, OptAxis),
	}
	c.vp.ContainerExtent = container

	c.recomputeCompression()
	ComputeRanges(&c.vp, c.hc, c.cs, c.overscan, c.blend)
	return c, nil
}

// recomputeCompression rebuilds the compression state and derives the
// extent regime. Called on data-shape changes only, never on scroll.
func (c *Controller) recomputeCompression() {
	prev := c.cs
	c.cs = Compression(c.hc.Total(), c.hc, c.capacity)
	if c.cs.Compressed {
		c.mode.Regime = RegimeCompressed
	} else {
		c.mode.Regime = RegimeNative
	}
	if prev.Compressed != c.cs.Compressed {
		scrollLogger.Debug("extent regime changed",
			"regime", c.mode.Regime,
			"actualExtent", c.cs.ActualExtent,
			"virtualExtent", c.cs.VirtualExtent,
			"ratio", c.cs.Ratio)
	}
}

// ScrollBy applies a movement delta along the scroll axis. This is the
// embedded-driver entry point: drags and wheel events accumulate into the
// position directly, which is also what makes the compressed+embedded
// mode work without native position delivery.
func (c *Controller) ScrollBy(delta float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.cancelAnimLocked()
	d := c.setPositionLocked(c.vp.ScrollPosition + delta)
	c.mu.Unlock()
	d.deliver()
}

// SetExternalPosition accepts an absolute position reported by an
// externally-driven surface. Under compression the surface still owns
// native scrolling against the virtual extent, so the reported position
// is already in virtual space and needs no further remapping here.
func (c *Controller) SetExternalPosition(pos float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.cancelAnimLocked()
	d := c.setPositionLocked(pos)
	c.mu.Unlock()
	d.deliver()
}

// MoveTo scrolls to an absolute position, optionally animated. Issuing a
// new scroll command cancels any in-progress animation.
func (c *Controller) MoveTo(pos float64, animated bool) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.cancelAnimLocked()
	if animated {
		c.animActive = true
		c.animTarget = clampf(pos, 0, c.cs.MaxScroll(c.vp.ContainerExtent))
		c.mu.Unlock()
		return
	}
	d := c.setPositionLocked(pos)
	c.mu.Unlock()
	d.deliver()
}

// ScrollToIndex scrolls so the item lands at the given alignment inside
// the container. With wrap navigation enabled the index wraps modulo the
// item count; otherwise it clamps.
func (c *Controller) ScrollToIndex(index int, align Alignment, animated bool) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	total := c.hc.Total()
	if total == 0 {
		c.mu.Unlock()
		return
	}
	if c.wrap {
		index = ((index % total) + total) % total
	} else {
		index = clampi(index, 0, total-1)
	}
	target := scrollTargetFor(index, align, c.vp.ContainerExtent, c.blend, c.hc, c.cs)
	c.cancelAnimLocked()
	if animated {
		c.animActive = true
		c.animTarget = target
		c.mu.Unlock()
		return
	}
	d := c.setPositionLocked(target)
	c.mu.Unlock()
	d.deliver()
}

// Resize updates the container extent. Non-positive extents are ignored;
// the position is re-clamped and ranges recomputed against the new
// window.
func (c *Controller) Resize(extent float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	if extent <= 0 {
		scrollLogger.Debug("ignoring non-positive container extent", "extent", extent)
		c.mu.Unlock()
		return
	}
	c.vp.ContainerExtent = extent
	d := c.setPositionLocked(c.vp.ScrollPosition)
	c.mu.Unlock()
	d.deliver()
}

// SetTotal rebuilds the height cache for a new item count. When the
// collection crosses the compression threshold in either direction, the
// position is converted through the ratio mapping so the perceived
// location survives the regime switch.
func (c *Controller) SetTotal(total int) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	actualPos := c.vp.ScrollPosition / c.cs.Ratio
	c.hc.Rebuild(total)
	c.recomputeCompression()
	d := c.setPositionLocked(actualPos * c.cs.Ratio)
	c.mu.Unlock()
	d.deliver()
}

// SetMode reconfigures driver, axis, and extent regime. Forcing the
// regime converts the position between native and compressed coordinate
// spaces with the same ratio mapping used for threshold crossings.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.mode.Driver = m.Driver
	c.mode.Axis = m.Axis

	if m.Regime == c.mode.Regime {
		c.mu.Unlock()
		return
	}
	actualPos := c.vp.ScrollPosition / c.cs.Ratio
	if m.Regime == RegimeNative {
		// Passthrough state: positions become raw offsets again.
		c.cs = Compression(c.hc.Total(), c.hc, c.cs.ActualExtent+1)
	} else {
		c.cs = Compression(c.hc.Total(), c.hc, c.capacity)
	}
	c.mode.Regime = m.Regime
	scrollLogger.Debug("mode set", "regime", c.mode.Regime, "driver", c.mode.Driver, "axis", c.mode.Axis)
	d := c.setPositionLocked(actualPos * c.cs.Ratio)
	c.mu.Unlock()
	d.deliver()
}

// Tick advances cooperative work by one frame: in-flight scroll
// animations and any movement flush deferred by throttling. Hosts driving
// animated scrolls call this once per display refresh with the frame's
// delta time in seconds.
func (c *Controller) Tick(dt float64) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	var d delivery
	if c.animActive {
		diff := c.animTarget - c.vp.ScrollPosition
		step := dt * animSmoothSpeed
		if (diff < animThreshold && diff > -animThreshold) || step >= 1 {
			c.animActive = false
			d = c.setPositionLocked(c.animTarget)
		} else {
			d = c.setPositionLocked(c.vp.ScrollPosition + diff*step)
		}
	} else if c.pending {
		d = c.flushLocked()
	}
	c.mu.Unlock()
	d.deliver()
}

// setPositionLocked clamps and stores a new position, records a velocity
// sample, re-arms the idle timer, and either flushes the recompute or
// defers it under throttling. Caller holds the mutex.
func (c *Controller) setPositionLocked(pos float64) delivery {
	pos = clampf(pos, 0, c.cs.MaxScroll(c.vp.ContainerExtent))

	switch {
	case pos > c.vp.ScrollPosition:
		c.direction = 1
	case pos < c.vp.ScrollPosition:
		c.direction = -1
	}
	c.vp.ScrollPosition = pos

	now := c.now()
	c.tracker.Record(pos, now)
	c.armIdleLocked()

	if c.throttle > 0 && now.Sub(c.lastFlush) < c.throttle {
		c.pending = true
		return delivery{}
	}
	return c.flushLocked()
}

// flushLocked recomputes ranges and prepares the movement callback.
// Caller holds the mutex.
func (c *Controller) flushLocked() delivery {
	c.pending = false
	c.lastFlush = c.now()
	ComputeRanges(&c.vp, c.hc, c.cs, c.overscan, c.blend)
	if c.onMovement == nil {
		return delivery{}
	}
	return delivery{
		movement: Movement{
			Position:  c.vp.ScrollPosition,
			Direction: c.direction,
			Velocity:  c.tracker.Velocity(),
		},
		cb: c.onMovement,
	}
}

// armIdleLocked restarts the idle debounce. Caller holds the mutex.
func (c *Controller) armIdleLocked() {
	if c.idleTimer != nil {
		c.idleTimer.Stop()
	}
	timeout := c.idleTimeout
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	c.idleTimer = time.AfterFunc(timeout, c.fireIdle)
}

// fireIdle runs on the timer goroutine. The destroyed flag is checked
// under the mutex so no callback can fire after Destroy.
func (c *Controller) fireIdle() {
	c.mu.Lock()
	if c.destroyed || c.onIdle == nil {
		c.mu.Unlock()
		return
	}
	cb := c.onIdle
	c.mu.Unlock()
	cb()
}

func (c *Controller) cancelAnimLocked() {
	c.animActive = false
}

// OnMovement registers the render callback. It is invoked synchronously
// after every processed movement with the position, direction, and
// current velocity; positions are delivered in input order.
func (c *Controller) OnMovement(cb func(Movement)) {
	c.mu.Lock()
	c.onMovement = cb
	c.mu.Unlock()
}

// OnIdle registers the callback fired once per inactivity period, after
// the configured idle timeout with no movement.
func (c *Controller) OnIdle(cb func()) {
	c.mu.Lock()
	c.onIdle = cb
	c.mu.Unlock()
}

// Position returns the authoritative scroll position.
func (c *Controller) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp.ScrollPosition
}

// Velocity returns the current velocity reading in position units per
// second. Check Tracking before trusting it.
func (c *Controller) Velocity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Velocity()
}

// Tracking reports whether enough fresh samples have accumulated for the
// velocity reading to be meaningful.
func (c *Controller) Tracking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Tracking()
}

// Viewport returns a copy of the current viewport state. The copy is a
// read-only projection; the underlying record is mutated in place on the
// next movement.
func (c *Controller) Viewport() ViewportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

// Mode returns the current composed scroll mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Compression returns the cached compression state.
func (c *Controller) Compression() CompressionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cs
}

// PositionOfIndex returns the viewport-relative coordinate of an item at
// the current scroll position. Renderers use this to place materialized
// elements.
func (c *Controller) PositionOfIndex(index int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PositionOf(index, &c.vp, c.hc, c.cs, c.blend)
}

// HeightOfIndex returns the extent of an item along the scroll axis.
func (c *Controller) HeightOfIndex(index int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hc.Total() == 0 {
		return 0
	}
	return c.hc.HeightOf(clampi(index, 0, c.hc.Total()-1))
}

// Destroy cancels pending animations and timers and detaches all
// callbacks. It is idempotent, and no callback fires after it returns.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.animActive = false
	c.pending = false
	if c.idleTimer != nil {
		c.idleTimer.Stop()
		c.idleTimer = nil
	}
	c.onMovement = nil
	c.onIdle = nil
	c.mu.Unlock()
}

// delivery carries a callback out of the locked region so it runs without
// holding the controller mutex.
type delivery struct {
	movement Movement
	cb       func(Movement)
}

func (d delivery) deliver() {
	if d.cb != nil {
		d.cb(d.movement)
	}
}
