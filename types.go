// Package vscroll provides the scroll math for virtualizing very large
// ordered collections. It computes which indices are visible, where each
// item sits on screen, and owns scroll position and velocity tracking.
package vscroll

// Range is an inclusive pair of logical item indices.
// A valid range satisfies Start <= End with both in [0, total-1].
// The empty collection is represented by the sentinel {-1, -1}.
type Range struct {
	Start, End int
}

// EmptyRange is the sentinel for a range over zero items.
var EmptyRange = Range{Start: -1, End: -1}

// IsEmpty returns true if the range covers no items.
func (r Range) IsEmpty() bool {
	return r.Start < 0 || r.End < r.Start
}

// Len returns the number of items the range covers.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains returns true if the index falls inside the range.
func (r Range) Contains(i int) bool {
	return !r.IsEmpty() && i >= r.Start && i <= r.End
}

// Alignment controls where a target index lands inside the container
// after a programmatic scroll.
type Alignment int

const (
	AlignStart  Alignment = iota // Item flush with the leading edge
	AlignCenter                  // Item centered in the container
	AlignEnd                     // Item flush with the trailing edge
)

// clampf clamps a float64 value to a range.
func clampf(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float64 values.
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float64 values.
func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// clampi clamps an int value to a range.
func clampi(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
