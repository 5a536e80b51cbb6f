package vscroll

// DefaultCoordinateCap is the largest physical extent a scrollable surface
// is assumed to support. Platform surfaces stop positioning content
// reliably somewhere around 16.7 million units; staying under 16 million
// leaves headroom.
const DefaultCoordinateCap = 16_000_000

// CompressionState describes how a logically oversized extent is remapped
// into the bounded coordinate space of the host surface. When the actual
// extent fits under the cap the state is a no-op passthrough (Ratio 1).
//
// The state is derived from the item count and sizing only. It is cached
// by the controller and recomputed when the data shape changes, never per
// movement event.
type CompressionState struct {
	Compressed    bool    // True when ActualExtent exceeds the cap
	ActualExtent  float64 // Sum of all item extents
	VirtualExtent float64 // min(ActualExtent, cap): extent exposed to the surface
	Ratio         float64 // VirtualExtent / ActualExtent, 1 when uncompressed

	total int
}

// Compression computes the CompressionState for a collection. Pass cap <= 0
// to use DefaultCoordinateCap.
func Compression(total int, hc HeightCache, cap float64) CompressionState {
	if cap <= 0 {
		cap = DefaultCoordinateCap
	}
	actual := hc.TotalExtent()
	cs := CompressionState{
		ActualExtent:  actual,
		VirtualExtent: actual,
		Ratio:         1,
		total:         total,
	}
	if actual > cap {
		cs.Compressed = true
		cs.VirtualExtent = cap
		cs.Ratio = cap / actual
	}
	return cs
}

// MaxScroll returns the largest valid scroll position for the given
// container extent.
func (cs CompressionState) MaxScroll(container float64) float64 {
	return maxf(cs.VirtualExtent-container, 0)
}

// VirtualIndex returns the fractional item index the scroll position maps
// to under compression. Uncompressed callers should use HeightCache.IndexAt
// instead; this mapping only makes sense when positions are compressed.
func (cs CompressionState) VirtualIndex(pos float64) float64 {
	if cs.VirtualExtent <= 0 {
		return 0
	}
	return pos / cs.VirtualExtent * float64(cs.total)
}

// effectiveBlend normalizes the near-end blend window. The window defaults
// to one container extent and is never smaller than the final item's
// extent, so containers shorter than a single item still interpolate over
// a meaningful distance. The window also never exceeds the scrollable
// distance itself.
func (cs CompressionState) effectiveBlend(container, blend float64, hc HeightCache) float64 {
	if blend <= 0 {
		blend = container
	}
	if cs.total > 0 {
		blend = maxf(blend, hc.HeightOf(cs.total-1))
	}
	return minf(blend, cs.MaxScroll(container))
}

// coordinate returns the viewport-relative leading-edge coordinate of an
// item. Uncompressed this is the raw offset minus the scroll position.
// Compressed, the item is positioned relative to the fractional virtual
// index so it renders at its true size, and within the near-end blend
// window the result is linearly interpolated toward the bottom-anchored
// true coordinate so the final index lands exactly flush.
func (cs CompressionState) coordinate(index int, pos, container, blend float64, hc HeightCache) float64 {
	if !cs.Compressed {
		return hc.OffsetOf(index) - pos
	}

	h := hc.HeightOf(index)
	comp := (float64(index) - cs.VirtualIndex(pos)) * h

	maxV := cs.MaxScroll(container)
	eb := cs.effectiveBlend(container, blend, hc)
	if eb <= 0 || pos <= maxV-eb {
		return comp
	}

	// Bottom-anchored coordinate: where the item would sit if the final
	// screenful scrolled natively. Exact at pos == maxV.
	maxA := maxf(cs.ActualExtent-container, 0)
	anchored := hc.OffsetOf(index) - maxA + (maxV - pos)

	t := clampf((pos-(maxV-eb))/eb, 0, 1)
	return comp*(1-t) + anchored*t
}

// visibleAt computes the inclusive index range whose spans intersect the
// container [0, container) at the given scroll position.
func visibleAt(pos, container, blend float64, hc HeightCache, cs CompressionState) Range {
	total := cs.total
	if total == 0 || container <= 0 {
		return EmptyRange
	}

	if !cs.Compressed {
		start := hc.IndexAt(pos)
		end := hc.IndexAt(pos + container)
		if end > start && hc.OffsetOf(end) >= pos+container {
			end--
		}
		return Range{Start: start, End: end}
	}

	// Seed from the fractional index, then settle on the first item whose
	// span crosses the top edge. The blend shifts coordinates by at most a
	// couple of screenfuls, so both walks stay short.
	start := clampi(int(cs.VirtualIndex(pos)), 0, total-1)
	for start < total-1 && cs.coordinate(start, pos, container, blend, hc)+hc.HeightOf(start) <= 0 {
		start++
	}
	for start > 0 && cs.coordinate(start-1, pos, container, blend, hc)+hc.HeightOf(start-1) > 0 {
		start--
	}

	end := start
	for end < total-1 && cs.coordinate(end+1, pos, container, blend, hc) < container {
		end++
	}
	return Range{Start: start, End: end}
}

// scrollTargetFor returns the scroll position that places index at the
// requested alignment inside the container. Compressed targets invert the
// virtual-index mapping; targets that land inside the near-end blend
// window are refined by bisection over the blended coordinate function.
func scrollTargetFor(index int, align Alignment, container, blend float64, hc HeightCache, cs CompressionState) float64 {
	total := cs.total
	if total == 0 {
		return 0
	}
	index = clampi(index, 0, total-1)
	h := hc.HeightOf(index)

	// Desired viewport-relative coordinate for the item's leading edge.
	var want float64
	switch align {
	case AlignEnd:
		want = container - h
	case AlignCenter:
		want = (container - h) / 2
	default:
		want = 0
	}

	if !cs.Compressed {
		return clampf(hc.OffsetOf(index)-want, 0, maxf(cs.ActualExtent-container, 0))
	}

	maxV := cs.MaxScroll(container)
	eb := cs.effectiveBlend(container, blend, hc)

	// Outside the blend window the mapping is linear and inverts directly.
	if h > 0 {
		vIdx := float64(index) - want/h
		pos := vIdx / float64(total) * cs.VirtualExtent
		if pos <= maxV-eb {
			return clampf(pos, 0, maxV)
		}
	}

	// Inside the blend window the coordinate is a blend of two linear maps;
	// bisect on the monotone-decreasing coordinate instead of inverting it
	// analytically.
	lo, hi := maxf(maxV-eb, 0), maxV
	if cs.coordinate(index, lo, container, blend, hc) <= want {
		return lo
	}
	if cs.coordinate(index, hi, container, blend, hc) >= want {
		return hi
	}
	for i := 0; i < 48 && hi-lo > 1e-7; i++ {
		mid := (lo + hi) / 2
		if cs.coordinate(index, mid, container, blend, hc) > want {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
