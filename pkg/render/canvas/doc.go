// Package canvas draws resolved layouts as the screen would show them.
//
// [RenderSVG] produces a scalable picture with one filled rectangle per
// leaf. [NewGrid] scales the same rectangles into a character grid for
// terminal previews.
//
//	svg := canvas.RenderSVG(p, canvas.WithContainers(), canvas.WithRects())
//	fmt.Println(canvas.NewGrid(p, 80, 24))
package canvas
