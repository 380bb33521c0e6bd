// Package window finds desktop windows and moves them into layout slots.
//
// [Manager] abstracts the host window system. [X11] drives an EWMH window
// manager through the wmctrl and xdotool tools, [Memory] keeps an
// in-process table for tests, and [DryRun] logs moves instead of making
// them.
//
// A [Placer] binds labels of a resolved [placement.Placement] to window
// handles and moves all bound windows concurrently:
//
//	mgr := window.NewX11()
//	h, err := window.Resolve(ctx, mgr, "title:Firefox")
//	...
//	p := window.NewPlacer(mgr)
//	_ = p.Bind("browser", h)
//	moves, err := p.Place(ctx, pl)
package window
