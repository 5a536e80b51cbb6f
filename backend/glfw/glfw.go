// Package glfw adapts GLFW window events into vscroll movement signals.
// It is the embedded-driver shape: the engine owns the scroll position
// and the host window only delivers deltas.
package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vscroll"
)

// DefaultWheelStep is how many position units one wheel notch scrolls.
const DefaultWheelStep = 40.0

// pageFraction is how much of the container a PageUp/PageDown covers.
const pageFraction = 0.8

// Driver feeds scroll, key, cursor, and resize events from a GLFW window
// into a Controller.
type Driver struct {
	window     *glfw.Window
	controller *vscroll.Controller
	wheelStep  float64

	dragging     bool
	lastX, lastY float64
}

// NewDriver wires the window's callbacks to the controller. Pass
// wheelStep <= 0 to use DefaultWheelStep.
func NewDriver(window *glfw.Window, controller *vscroll.Controller, wheelStep float64) *Driver {
	if wheelStep <= 0 {
		wheelStep = DefaultWheelStep
	}
	d := &Driver{
		window:     window,
		controller: controller,
		wheelStep:  wheelStep,
	}

	window.SetScrollCallback(d.scrollCallback)
	window.SetKeyCallback(d.keyCallback)
	window.SetMouseButtonCallback(d.mouseButtonCallback)
	window.SetCursorPosCallback(d.cursorPosCallback)
	window.SetSizeCallback(d.sizeCallback)

	return d
}

// Tick advances controller animations. Call once per frame with the
// frame's delta time in seconds.
func (d *Driver) Tick(dt float64) {
	d.controller.Tick(dt)
}

func (d *Driver) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	axis := d.controller.Mode().Axis
	// Wheel-up is positive in GLFW but scrolls toward the start.
	d.controller.ScrollBy(-axis.Main(xoff, yoff) * d.wheelStep)
}

func (d *Driver) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	c := d.controller
	page := c.Viewport().ContainerExtent * pageFraction

	switch key {
	case glfw.KeyPageDown:
		c.ScrollBy(page)
	case glfw.KeyPageUp:
		c.ScrollBy(-page)
	case glfw.KeyHome:
		c.MoveTo(0, false)
	case glfw.KeyEnd:
		c.MoveTo(c.Compression().MaxScroll(c.Viewport().ContainerExtent), false)
	}
}

func (d *Driver) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		d.dragging = true
		d.lastX, d.lastY = w.GetCursorPos()
	case glfw.Release:
		d.dragging = false
	}
}

func (d *Driver) cursorPosCallback(w *glfw.Window, x, y float64) {
	if !d.dragging {
		return
	}
	axis := d.controller.Mode().Axis
	// Dragging content down scrolls toward the start.
	d.controller.ScrollBy(-axis.Main(x-d.lastX, y-d.lastY))
	d.lastX, d.lastY = x, y
}

func (d *Driver) sizeCallback(w *glfw.Window, width, height int) {
	axis := d.controller.Mode().Axis
	d.controller.Resize(axis.MainExtent(float64(width), float64(height)))
}
