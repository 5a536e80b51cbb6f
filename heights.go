package vscroll

import "sort"

// HeightCache maps logical indices to spatial offsets along the scroll axis.
// Two implementations exist: a fixed-extent cache with O(1) math everywhere,
// and a variable-extent cache backed by a prefix-sum array.
//
// All query methods clamp out-of-range inputs instead of rejecting them.
// The cache must stay safely queryable while the underlying collection is
// mutated mid-scroll; a stale answer is acceptable, a panic is not.
type HeightCache interface {
	// OffsetOf returns the leading-edge offset of the item at index.
	OffsetOf(index int) float64

	// HeightOf returns the extent of the item at index.
	HeightOf(index int) float64

	// IndexAt returns the index of the item whose span contains offset.
	IndexAt(offset float64) int

	// TotalExtent returns the summed extent of all items.
	TotalExtent() float64

	// Total returns the current item count.
	Total() int

	// Rebuild resets the cache for a new item count. O(1) for fixed
	// extents, O(n) for variable extents. Never called on scroll.
	Rebuild(total int)
}

// SizeFunc supplies the extent for a single item. It must be pure: the
// variable cache samples it once per index on Rebuild and never again.
type SizeFunc func(index int) float64

// fixedHeights is the constant-extent HeightCache. All operations are
// arithmetic on the single height value.
type fixedHeights struct {
	height float64
	total  int
}

// NewFixedHeights creates a HeightCache where every item has the same extent.
// A non-positive height is clamped to 1 so the cache stays queryable;
// configuration validation happens at controller construction.
func NewFixedHeights(height float64, total int) HeightCache {
	if height <= 0 {
		height = 1
	}
	if total < 0 {
		total = 0
	}
	return &fixedHeights{height: height, total: total}
}

func (f *fixedHeights) OffsetOf(index int) float64 {
	return float64(clampi(index, 0, maxi(f.total-1, 0))) * f.height
}

func (f *fixedHeights) HeightOf(index int) float64 {
	return f.height
}

func (f *fixedHeights) IndexAt(offset float64) int {
	if f.total == 0 {
		return 0
	}
	return clampi(int(offset/f.height), 0, f.total-1)
}

func (f *fixedHeights) TotalExtent() float64 {
	return float64(f.total) * f.height
}

func (f *fixedHeights) Total() int {
	return f.total
}

func (f *fixedHeights) Rebuild(total int) {
	if total < 0 {
		total = 0
	}
	f.total = total
}

// variableHeights is the per-item-extent HeightCache. Offsets come from a
// prefix-sum array of length total+1; prefix[i] is the leading edge of item
// i and prefix[total] is the total extent.
type variableHeights struct {
	sizeOf SizeFunc
	prefix []float64
	total  int
}

// NewVariableHeights creates a HeightCache driven by a per-item size
// function. The prefix-sum array is built once here and again on every
// Rebuild; lookups are O(1) and IndexAt is a binary search.
func NewVariableHeights(sizeOf SizeFunc, total int) HeightCache {
	v := &variableHeights{sizeOf: sizeOf}
	v.Rebuild(total)
	return v
}

func (v *variableHeights) OffsetOf(index int) float64 {
	if v.total == 0 {
		return 0
	}
	return v.prefix[clampi(index, 0, v.total-1)]
}

func (v *variableHeights) HeightOf(index int) float64 {
	if v.total == 0 {
		return 0
	}
	i := clampi(index, 0, v.total-1)
	return v.prefix[i+1] - v.prefix[i]
}

func (v *variableHeights) IndexAt(offset float64) int {
	if v.total == 0 {
		return 0
	}
	if offset <= 0 {
		return 0
	}
	// First index whose trailing edge lies beyond the offset.
	i := sort.Search(v.total, func(i int) bool {
		return v.prefix[i+1] > offset
	})
	return clampi(i, 0, v.total-1)
}

func (v *variableHeights) TotalExtent() float64 {
	if v.total == 0 {
		return 0
	}
	return v.prefix[v.total]
}

func (v *variableHeights) Total() int {
	return v.total
}

func (v *variableHeights) Rebuild(total int) {
	if total < 0 {
		total = 0
	}
	v.total = total
	if cap(v.prefix) < total+1 {
		v.prefix = make([]float64, total+1)
	} else {
		v.prefix = v.prefix[:total+1]
	}
	v.prefix[0] = 0
	for i := 0; i < total; i++ {
		h := v.sizeOf(i)
		if h < 0 {
			h = 0
		}
		v.prefix[i+1] = v.prefix[i] + h
	}
}

// maxi returns the maximum of two int values.
func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
