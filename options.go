package vscroll

import "time"

// Option configures a Controller at construction time.
type Option func(*options)

// options holds all controller configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for controller options.
//
// Example:
//
//	// Define option keys (built-in ones are already defined below)
//	var OptCustomThing = vscroll.NewOptKey("customThing", defaultValue)
//
//	// Set options
//	c, err := vscroll.NewController(vscroll.WithOpt(OptCustomThing, value))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

// --- Collection shape ---
var (
	OptTotal       = NewOptKey("total", 0)
	OptFixedHeight = NewOptKey[float64]("fixedHeight", 0)
	OptSizing      = NewOptKey[SizeFunc]("sizing", nil)
)

// --- Viewport ---
var (
	OptContainerExtent = NewOptKey[float64]("containerExtent", 0)
	OptOverscan        = NewOptKey("overscan", 3)
)

// --- Mode ---
var (
	OptDriver = NewOptKey("driver", DriverEmbedded)
	OptAxis   = NewOptKey("axis", AxisVertical)
	OptWrap   = NewOptKey("wrap", false)
)

// --- Tuning ---
var (
	OptCoordinateCap    = NewOptKey[float64]("coordinateCap", DefaultCoordinateCap)
	OptBlendWindow      = NewOptKey[float64]("blendWindow", 0)
	OptIdleTimeout      = NewOptKey("idleTimeout", 150*time.Millisecond)
	OptStaleness        = NewOptKey("staleness", DefaultStaleness)
	OptThrottleInterval = NewOptKey("throttleInterval", time.Duration(0))
)

// =============================================================================
// Convenience Option Functions (wrap WithOpt for common cases)
// =============================================================================

// WithTotal sets the logical item count.
func WithTotal(total int) Option { return WithOpt(OptTotal, total) }

// WithFixedHeight sizes every item to the same extent.
func WithFixedHeight(h float64) Option { return WithOpt(OptFixedHeight, h) }

// WithSizing sizes items through a per-index function. The function must
// be pure; it is sampled once per index whenever the cache rebuilds.
func WithSizing(fn SizeFunc) Option { return WithOpt(OptSizing, fn) }

// WithContainerExtent sets the visible window extent along the scroll axis.
func WithContainerExtent(extent float64) Option { return WithOpt(OptContainerExtent, extent) }

// WithOverscan sets how many extra indices are rendered beyond the
// strictly visible range on each side.
func WithOverscan(n int) Option { return WithOpt(OptOverscan, n) }

// WithDriver selects who owns the scrollable surface.
func WithDriver(d Driver) Option { return WithOpt(OptDriver, d) }

// WithAxis selects the scroll direction.
func WithAxis(a Axis) Option { return WithOpt(OptAxis, a) }

// WithWrap makes index-targeted navigation wrap modulo the item count
// instead of clamping at the ends.
func WithWrap() Option { return WithOpt(OptWrap, true) }

// WithCoordinateCap overrides the platform coordinate cap that triggers
// compression. Intended for tests; the default matches real surfaces.
func WithCoordinateCap(cap float64) Option { return WithOpt(OptCoordinateCap, cap) }

// WithBlendWindow sets the distance over which near-end compressed
// coordinates blend toward their true bottom-anchored positions.
// Zero means one container extent.
func WithBlendWindow(w float64) Option { return WithOpt(OptBlendWindow, w) }

// WithIdleTimeout sets how long after the last movement the idle callback
// fires.
func WithIdleTimeout(d time.Duration) Option { return WithOpt(OptIdleTimeout, d) }

// WithStaleness sets the gap after which velocity history is discarded.
func WithStaleness(d time.Duration) Option { return WithOpt(OptStaleness, d) }

// WithThrottleInterval coalesces movement recomputation to at most once
// per interval; positions arriving faster are folded into the next flush.
// Zero disables throttling.
func WithThrottleInterval(d time.Duration) Option { return WithOpt(OptThrottleInterval, d) }
