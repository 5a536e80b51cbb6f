// Command example scrolls a ten-million-row list in a terminal. With
// one-cell rows the extent crosses the coordinate cap, so the demo also
// exercises the compressed regime end to end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/go-theft-auto/vscroll"
	"github.com/go-theft-auto/vscroll/backend/terminal"
)

func main() {
	total := flag.Int("n", 10_000_000, "number of rows")
	cap := flag.Float64("cap", 1_000_000, "coordinate cap (small so compression kicks in)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	vscroll.SetVerbose(*verbose)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	_, h := screen.Size()
	c, err := vscroll.NewController(
		vscroll.WithTotal(*total),
		vscroll.WithFixedHeight(1),
		vscroll.WithContainerExtent(float64(max(h-1, 1))),
		vscroll.WithOverscan(5),
		vscroll.WithCoordinateCap(*cap),
	)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer c.Destroy()

	view := terminal.NewView(screen, c, func(i int) string {
		return fmt.Sprintf("%9d  row %d of %d", i, i+1, *total)
	})
	if err := view.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
