package canvas

import (
	"strings"

	"github.com/matzehuels/screengod/pkg/placement"
)

// Grid is a character-cell rendering of a placement, used for terminal
// previews. Each leaf is drawn as a box scaled into the grid.
type Grid struct {
	cols, rows int
	cells      [][]rune
	owner      [][]int
}

// NewGrid scales p into a cols x rows grid. Leaves smaller than a cell
// along either axis are still drawn one cell wide.
func NewGrid(p *placement.Placement, cols, rows int) *Grid {
	g := &Grid{cols: max(cols, 0), rows: max(rows, 0)}
	g.cells = make([][]rune, g.rows)
	g.owner = make([][]int, g.rows)
	for y := range g.rows {
		g.cells[y] = []rune(strings.Repeat(" ", g.cols))
		g.owner[y] = make([]int, g.cols)
		for x := range g.owner[y] {
			g.owner[y][x] = -1
		}
	}
	if g.cols == 0 || g.rows == 0 || p.Width <= 0 || p.Height <= 0 {
		return g
	}

	for _, it := range p.Leaves() {
		x0 := scale(it.Rect.X-p.X, p.Width, g.cols)
		x1 := scale(it.Rect.Right()-p.X, p.Width, g.cols)
		y0 := scale(it.Rect.Y-p.Y, p.Height, g.rows)
		y1 := scale(it.Rect.Bottom()-p.Y, p.Height, g.rows)
		if x1 <= x0 {
			x1 = min(x0+1, g.cols)
		}
		if y1 <= y0 {
			y1 = min(y0+1, g.rows)
		}
		if x0 >= x1 || y0 >= y1 {
			continue
		}
		g.box(it, x0, y0, x1-1, y1-1)
	}
	return g
}

func scale(v, total, cells int) int {
	c := v * cells / total
	return max(0, min(c, cells))
}

func (g *Grid) box(it placement.Item, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.owner[y][x] = it.ID
			g.cells[y][x] = boxRune(x, y, x0, y0, x1, y1)
		}
	}

	title := []rune(itemTitle(it))
	inner := x1 - x0 - 1
	if inner <= 0 {
		return
	}
	if len(title) > inner {
		title = title[:inner]
	}
	y := (y0 + y1) / 2
	x := x0 + 1 + (inner-len(title))/2
	copy(g.cells[y][x:], title)
}

func boxRune(x, y, x0, y0, x1, y1 int) rune {
	top, bottom := y == y0, y == y1
	left, right := x == x0, x == x1
	switch {
	case x0 == x1 && y0 == y1:
		return '□'
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return ' '
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// Owner returns the item ID drawn at a cell, or -1 for empty cells.
func (g *Grid) Owner(col, row int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return -1
	}
	return g.owner[row][col]
}

// Lines returns the grid as one string per row.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	for y, row := range g.cells {
		out[y] = string(row)
	}
	return out
}

// String joins the rows with newlines.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
