/*
Package vscroll virtualizes rendering of very large ordered collections
(1,000,000+ items) inside a fixed-size scrollable viewport: only a small
contiguous slice of indices is ever materialized, independent of the
logical collection size.

# Overview

The engine is pure scroll math. It maps logical indices to spatial
positions under fixed or per-item variable sizing, compresses extents
that exceed the platform coordinate cap (~16 million units) without
distorting item sizes, computes visible and render index ranges from the
scroll position, and owns position, velocity, and idle tracking. It
performs no I/O, owns no visual elements, and never decides what content
to show - only which indices at which coordinates.

Rendering, data fetching, selection, and styling are collaborators: they
consume the engine's ranges, coordinates, and velocity and feed movement
signals back in. The backend/terminal and backend/glfw packages show the
two driver shapes.

# Quick Start

	c, err := vscroll.NewController(
	    vscroll.WithTotal(1_000_000),
	    vscroll.WithFixedHeight(48),
	    vscroll.WithContainerExtent(600),
	    vscroll.WithOverscan(5),
	)
	if err != nil {
	    log.Fatal(err)
	}
	defer c.Destroy()

	c.OnMovement(func(m vscroll.Movement) {
	    vp := c.Viewport()
	    for i := vp.RenderRange.Start; i <= vp.RenderRange.End; i++ {
	        y := c.PositionOfIndex(i)
	        // Place item i at coordinate y.
	    }
	})
	c.OnIdle(func() {
	    // Prefetch around the resting position.
	})

	c.ScrollBy(120)                                  // wheel delta
	c.ScrollToIndex(999_999, vscroll.AlignEnd, false) // jump to the end

# Compression

A collection of one million 48-unit rows spans 48,000,000 units - three
times what scrollable surfaces can address. The engine exposes a virtual
extent capped at 16,000,000 and positions items relative to the
fractional index the scroll position maps to, so every item still
renders at its true size and every index remains reachable. Within one
container extent of the end, coordinates blend linearly toward their
bottom-anchored true positions so the final item lands exactly flush
with no dead zone or overshoot.

# Free functions

Hosts that manage their own viewport records can skip the controller and
call the calculator directly:

	vp := vscroll.ViewportState{ScrollPosition: 40, ContainerExtent: 100}
	hc := vscroll.NewFixedHeights(20, 100)
	cs := vscroll.Compression(100, hc, 0)
	vscroll.ComputeRanges(&vp, hc, cs, 3, 0)
	// vp.VisibleRange == {2, 6}, vp.RenderRange == {0, 9}

ComputeRanges writes into the caller-supplied struct; the steady-state
scroll path allocates nothing.
*/
package vscroll
