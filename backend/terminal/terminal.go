// Package terminal renders a virtualized list in a terminal via tcell.
// It doubles as the reference renderer collaborator: it owns row drawing
// and recycling while the engine only supplies ranges and coordinates.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/vscroll"
)

// RowFunc produces the text for one logical index. It is called only for
// indices inside the render range.
type RowFunc func(index int) string

// View couples a tcell screen with a scroll controller and a row source.
type View struct {
	screen     tcell.Screen
	controller *vscroll.Controller
	rowOf      RowFunc

	style     tcell.Style
	statusBar tcell.Style
}

// NewView creates a terminal view. The controller should be configured
// with a fixed height of 1 (one row per cell line) and a container extent
// matching the usable screen height; Run keeps the extent in sync on
// resize.
func NewView(screen tcell.Screen, controller *vscroll.Controller, rowOf RowFunc) *View {
	v := &View{
		screen:     screen,
		controller: controller,
		rowOf:      rowOf,
		style:      tcell.StyleDefault,
		statusBar:  tcell.StyleDefault.Reverse(true),
	}
	controller.OnMovement(func(vscroll.Movement) { v.render() })
	controller.OnIdle(func() { v.render() })
	return v
}

// Run processes terminal events until the user quits (Esc, q, or
// Ctrl+C). It owns the event loop; movement callbacks repaint
// synchronously.
func (v *View) Run() error {
	v.syncSize()
	v.render()

	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.syncSize()
			v.screen.Sync()
			v.render()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		case nil:
			return nil
		}
	}
}

func (v *View) syncSize() {
	_, h := v.screen.Size()
	if h > 1 {
		v.controller.Resize(float64(h - 1)) // bottom row is the status bar
	}
}

func (v *View) handleKey(ev *tcell.EventKey) (quit bool) {
	c := v.controller
	page := c.Viewport().ContainerExtent * 0.8

	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		c.ScrollBy(-1)
	case tcell.KeyDown:
		c.ScrollBy(1)
	case tcell.KeyPgUp:
		c.ScrollBy(-page)
	case tcell.KeyPgDn:
		c.ScrollBy(page)
	case tcell.KeyHome:
		c.MoveTo(0, false)
	case tcell.KeyEnd:
		c.MoveTo(c.Compression().MaxScroll(c.Viewport().ContainerExtent), false)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'g':
			c.MoveTo(0, true)
		case 'G':
			c.MoveTo(c.Compression().MaxScroll(c.Viewport().ContainerExtent), true)
		}
	}
	return false
}

func (v *View) handleMouse(ev *tcell.EventMouse) {
	mask := ev.Buttons()
	if mask&tcell.WheelUp != 0 {
		v.controller.ScrollBy(-3)
	}
	if mask&tcell.WheelDown != 0 {
		v.controller.ScrollBy(3)
	}
}

// render materializes the render range. Rows are drawn at the engine's
// coordinates; everything outside the range simply does not exist.
func (v *View) render() {
	w, h := v.screen.Size()
	v.screen.Clear()

	vp := v.controller.Viewport()
	if !vp.RenderRange.IsEmpty() {
		for i := vp.RenderRange.Start; i <= vp.RenderRange.End; i++ {
			y := int(v.controller.PositionOfIndex(i))
			if y < 0 || y >= h-1 {
				continue
			}
			v.drawText(0, y, runewidth.Truncate(v.rowOf(i), w, "…"), v.style)
		}
	}

	status := fmt.Sprintf(" pos %.0f  visible %d-%d  vel %.0f/s ",
		vp.ScrollPosition, vp.VisibleRange.Start, vp.VisibleRange.End, v.controller.Velocity())
	if !v.controller.Tracking() {
		status += "(settling) "
	}
	v.drawText(0, h-1, runewidth.FillRight(runewidth.Truncate(status, w, ""), w), v.statusBar)

	v.screen.Show()
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		v.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
