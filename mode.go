package vscroll

// The scroll mode is a product of three orthogonal axes rather than a flat
// eight-way enum: the extent regime (whether positions live in native or
// compressed coordinate space), the driver (who owns the scrollable
// surface), and the layout axis. Each axis is handled in exactly one
// place, so no combination duplicates logic.

// ExtentRegime states which coordinate space scroll positions live in.
type ExtentRegime int

const (
	// RegimeNative means the surface extent fits the platform cap and
	// positions are raw offsets.
	RegimeNative ExtentRegime = iota

	// RegimeCompressed means the extent exceeds the cap and positions are
	// remapped through the compression ratio.
	RegimeCompressed
)

// Driver states who delivers movement to the controller.
type Driver int

const (
	// DriverEmbedded means the controller owns the scrollable surface and
	// accumulates position from movement deltas itself.
	DriverEmbedded Driver = iota

	// DriverExternal means the host surface (for example a page) owns
	// native scrolling and reports absolute positions.
	DriverExternal
)

// Axis selects the scroll direction. Horizontal layouts transpose the
// coordinate pair before it reaches the engine; everything downstream is
// axis-agnostic.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Main returns the component of (x, y) along the scroll axis.
func (a Axis) Main(x, y float64) float64 {
	if a == AxisHorizontal {
		return x
	}
	return y
}

// Cross returns the component of (x, y) across the scroll axis.
func (a Axis) Cross(x, y float64) float64 {
	if a == AxisHorizontal {
		return y
	}
	return x
}

// MainExtent returns the scroll-axis extent of a width/height pair.
func (a Axis) MainExtent(w, h float64) float64 {
	return a.Main(w, h)
}

// Mode is the composed scroll mode. The regime component is derived from
// the compression state and updated by the controller when the collection
// crosses the compression threshold; driver and axis are configuration.
type Mode struct {
	Regime ExtentRegime
	Driver Driver
	Axis   Axis
}

func (r ExtentRegime) String() string {
	if r == RegimeCompressed {
		return "compressed"
	}
	return "native"
}

func (d Driver) String() string {
	if d == DriverExternal {
		return "external"
	}
	return "embedded"
}

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}
