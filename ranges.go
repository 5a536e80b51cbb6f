package vscroll

// ViewportState is the mutable per-viewport record the engine writes into
// on every movement or resize event. It is owned by the controller/range
// calculator pair and mutated in place to keep the steady-state scroll
// path allocation free. External consumers receive value copies and must
// not retain pointers across events.
type ViewportState struct {
	ScrollPosition  float64 // Authoritative scroll position (virtual space)
	ContainerExtent float64 // Visible window extent along the scroll axis
	VisibleRange    Range   // Indices intersecting the container
	RenderRange     Range   // VisibleRange expanded by overscan, clamped
}

// ComputeRanges recomputes vp.VisibleRange and vp.RenderRange from the
// current scroll position. The visible range covers every index whose span
// intersects the container; the render range expands it by overscan on
// each side so rapid or reversed scrolling does not pop content in and
// out. Both ranges are written in place.
//
// Pass blend <= 0 to use the default near-end blend window of one
// container extent.
func ComputeRanges(vp *ViewportState, hc HeightCache, cs CompressionState, overscan int, blend float64) {
	vis := visibleAt(vp.ScrollPosition, vp.ContainerExtent, blend, hc, cs)
	vp.VisibleRange = vis
	if vis.IsEmpty() {
		vp.RenderRange = EmptyRange
		return
	}
	if overscan < 0 {
		overscan = 0
	}
	vp.RenderRange = Range{
		Start: clampi(vis.Start-overscan, 0, cs.total-1),
		End:   clampi(vis.End+overscan, 0, cs.total-1),
	}
}

// PositionOf returns the viewport-relative coordinate of an item's leading
// edge at the viewport's current scroll position. Out-of-range indices are
// clamped. Under compression the coordinate is derived from the fractional
// virtual index so items keep their true sizes.
func PositionOf(index int, vp *ViewportState, hc HeightCache, cs CompressionState, blend float64) float64 {
	if cs.total == 0 {
		return 0
	}
	index = clampi(index, 0, cs.total-1)
	return cs.coordinate(index, vp.ScrollPosition, vp.ContainerExtent, blend, hc)
}

// ScrollToIndexTarget returns the scroll position that places index at the
// given alignment inside the container. Under compression this inverts the
// ratio mapping rather than using raw offsets. The result is clamped to
// the valid scroll extent.
func ScrollToIndexTarget(index int, align Alignment, vp *ViewportState, hc HeightCache, cs CompressionState, blend float64) float64 {
	return scrollTargetFor(index, align, vp.ContainerExtent, blend, hc, cs)
}
