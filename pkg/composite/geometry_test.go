package composite

import (
	"testing"

	"github.com/matzehuels/screengod/pkg/errors"
)

func mustRect(t *testing.T, tr *Tree, id NodeID) Rect {
	t.Helper()
	r, err := tr.Rect(id, false)
	if err != nil {
		t.Fatalf("Rect(%d) error: %v", id, err)
	}
	return r
}

func TestWeightedPartition(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Horizontal, WithRect(Rect{X: 10, Y: 20, Width: 900, Height: 400}))
	a, b, c := mustLeaf(t, tr), mustLeaf(t, tr), mustLeaf(t, tr)
	mustAppend(t, tr, root, a, b, c)

	want := []Rect{
		{X: 10, Y: 20, Width: 300, Height: 400},
		{X: 310, Y: 20, Width: 300, Height: 400},
		{X: 610, Y: 20, Width: 300, Height: 400},
	}
	for i, id := range []NodeID{a, b, c} {
		if got := mustRect(t, tr, id); got != want[i] {
			t.Errorf("child %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestUnevenWeights(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Vertical, WithRect(Rect{Width: 300, Height: 100}))
	a := mustLeaf(t, tr, WithSize(Weight(1)))
	b := mustLeaf(t, tr, WithSize(Weight(2)))
	mustAppend(t, tr, root, a, b)

	if got := mustRect(t, tr, a); got != (Rect{X: 0, Y: 0, Width: 300, Height: 33}) {
		t.Errorf("a = %+v", got)
	}
	if got := mustRect(t, tr, b); got != (Rect{X: 0, Y: 33, Width: 300, Height: 66}) {
		t.Errorf("b = %+v", got)
	}
}

func TestPercentOverflow(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Vertical, WithRect(Rect{Width: 640, Height: 200}))
	a := mustLeaf(t, tr, WithSize(Percent(60)))
	b := mustLeaf(t, tr, WithSize(Percent(60)))
	mustAppend(t, tr, root, a, b)

	ra, rb := mustRect(t, tr, a), mustRect(t, tr, b)
	if ra.Height != 120 || rb.Height != 120 {
		t.Errorf("heights = %d, %d; want 120, 120", ra.Height, rb.Height)
	}
	if rb.Y != 120 || rb.Bottom() != 240 {
		t.Errorf("b spans %d..%d, want 120..240", rb.Y, rb.Bottom())
	}
	if ra.Width != 640 || rb.Width != 640 {
		t.Errorf("widths = %d, %d; want 640", ra.Width, rb.Width)
	}
	if tr.ItemCount(root) != 0 {
		t.Errorf("ItemCount for percent children = %d, want 0", tr.ItemCount(root))
	}
}

func TestPixelExtent(t *testing.T) {
	for _, extent := range []int{50, 150, 4000} {
		for _, dir := range []Direction{Horizontal, Vertical} {
			tr := NewTree()
			root := mustContainer(t, tr, dir, WithRect(Rect{Width: extent, Height: extent}))
			a := mustLeaf(t, tr, WithSize(Pixel(150)))
			b := mustLeaf(t, tr, WithSize(Pixel(30)))
			mustAppend(t, tr, root, a, b)

			r := mustRect(t, tr, a)
			main := r.Width
			if dir == Vertical {
				main = r.Height
			}
			if main != 150 {
				t.Errorf("%s container of %d: pixel child extent = %d, want 150", dir, extent, main)
			}
		}
	}
}

func TestNestedResolution(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Vertical, WithRect(Rect{X: 0, Y: 0, Width: 1000, Height: 600}))
	top := mustLeaf(t, tr, WithSize(Weight(1)))
	row := mustContainer(t, tr, Horizontal, WithSize(Weight(2)))
	mustAppend(t, tr, root, top, row)
	left, right := mustLeaf(t, tr), mustLeaf(t, tr)
	mustAppend(t, tr, row, left, right)

	rowRect := mustRect(t, tr, row)
	if rowRect != (Rect{X: 0, Y: 200, Width: 1000, Height: 400}) {
		t.Fatalf("row = %+v", rowRect)
	}

	rl, rr := mustRect(t, tr, left), mustRect(t, tr, right)
	if rl.Width+rr.Width != rowRect.Width {
		t.Errorf("leaf widths %d+%d != row width %d", rl.Width, rr.Width, rowRect.Width)
	}
	if rl.Height != rowRect.Height || rr.Height != rowRect.Height {
		t.Errorf("leaf heights %d, %d != row height %d", rl.Height, rr.Height, rowRect.Height)
	}
	if rl.Y != 200 || rr.X != 500 {
		t.Errorf("left.Y = %d, right.X = %d; want 200, 500", rl.Y, rr.X)
	}
}

func TestCacheIdempotence(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Horizontal, WithRect(Rect{Width: 900, Height: 100}))
	a, b := mustLeaf(t, tr), mustLeaf(t, tr)
	mustAppend(t, tr, root, a, b)

	w1, _ := tr.Width(a, false)
	w2, _ := tr.Width(a, false)
	if w1 != 450 || w2 != 450 {
		t.Fatalf("widths = %d, %d; want 450 twice", w1, w2)
	}

	// A new sibling changes the denominator but not a's cached width.
	mustAppend(t, tr, root, mustLeaf(t, tr))
	if w, _ := tr.Width(a, false); w != 450 {
		t.Errorf("cached width = %d, want 450", w)
	}
	if w, _ := tr.Width(a, true); w != 300 {
		t.Errorf("forced width = %d, want 300", w)
	}

	// Invalidate clears the whole subtree.
	mustAppend(t, tr, root, mustLeaf(t, tr))
	if err := tr.Invalidate(root); err != nil {
		t.Fatalf("Invalidate error: %v", err)
	}
	if w, _ := tr.Width(b, false); w != 225 {
		t.Errorf("width after Invalidate = %d, want 225", w)
	}
	if r := mustRect(t, tr, root); r.Width != 900 {
		t.Errorf("Invalidate must keep explicit root values, got %+v", r)
	}
}

func TestInsertClearsSubtreeCache(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Horizontal, WithRect(Rect{Width: 800, Height: 100}))
	inner := mustContainer(t, tr, Vertical)
	leaf := mustLeaf(t, tr)
	mustAppend(t, tr, root, inner)
	mustAppend(t, tr, inner, leaf)

	if w, _ := tr.Width(leaf, false); w != 800 {
		t.Fatalf("leaf width = %d, want 800", w)
	}

	// Moving inner under another root must not reuse its stale values.
	other := mustContainer(t, tr, Horizontal, WithRect(Rect{Width: 200, Height: 50}))
	mustAppend(t, tr, other, inner)
	if r := mustRect(t, tr, leaf); r != (Rect{Width: 200, Height: 50}) {
		t.Errorf("leaf after move = %+v, want 200x50", r)
	}
}

func TestDetachedGeometry(t *testing.T) {
	tr := NewTree()
	leaf := mustLeaf(t, tr)

	if _, err := tr.X(leaf, false); !errors.Is(err, errors.ErrCodeNoContainer) {
		t.Errorf("X on detached node error = %v, want %s", err, errors.ErrCodeNoContainer)
	}

	if err := tr.SetX(leaf, -1920); err != nil {
		t.Fatalf("SetX error: %v", err)
	}
	for _, force := range []bool{false, true} {
		if x, err := tr.X(leaf, force); err != nil || x != -1920 {
			t.Errorf("X(force=%v) = %d, %v; want -1920", force, x, err)
		}
	}
	if _, err := tr.Height(leaf, false); !errors.Is(err, errors.ErrCodeNoContainer) {
		t.Errorf("Height without explicit value error = %v", err)
	}
}

func TestGeometryBounds(t *testing.T) {
	const huge = 1 << 40
	tests := map[string]func(tr *Tree, id NodeID) error{
		"width":           func(tr *Tree, id NodeID) error { return tr.SetWidth(id, huge) },
		"height":          func(tr *Tree, id NodeID) error { return tr.SetHeight(id, huge) },
		"x":               func(tr *Tree, id NodeID) error { return tr.SetX(id, huge) },
		"negative y":      func(tr *Tree, id NodeID) error { return tr.SetY(id, -huge) },
		"rect":            func(tr *Tree, id NodeID) error { return tr.SetRect(id, Rect{Width: huge, Height: 1}) },
		"extent option":   func(tr *Tree, id NodeID) error { return WithExtent(1, huge)(tr, id) },
		"negative extent": func(tr *Tree, id NodeID) error { return tr.SetWidth(id, -1) },
	}
	for name, set := range tests {
		t.Run(name, func(t *testing.T) {
			tr := NewTree()
			root := mustContainer(t, tr, Horizontal)
			if err := set(tr, root); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidGeometry)
			}
		})
	}

	// The largest accepted extent and size still resolve without overflow.
	const most = errors.MaxGeometry
	tr := NewTree()
	row := mustContainer(t, tr, Horizontal, WithRect(Rect{X: -most, Width: most, Height: most}))
	wide := mustLeaf(t, tr, WithSize(Weight(most)))
	mustAppend(t, tr, row, wide)
	if got := mustRect(t, tr, wide); got != (Rect{X: -most, Width: most, Height: most}) {
		t.Errorf("weighted leaf = %+v", got)
	}

	col := mustContainer(t, tr, Vertical, WithRect(Rect{Width: 10, Height: most}))
	tall := mustLeaf(t, tr, WithSize(Percent(most)))
	mustAppend(t, tr, col, tall)
	if h, err := tr.Height(tall, false); err != nil || h != most*most/100 {
		t.Errorf("percent leaf height = %d, %v; want %d", h, err, most*most/100)
	}
}

func TestAttachedNodeImmutable(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Horizontal, WithRect(Rect{Width: 100, Height: 100}))
	leaf := mustLeaf(t, tr)
	mustAppend(t, tr, root, leaf)

	setters := map[string]func() error{
		"SetX":      func() error { return tr.SetX(leaf, 1) },
		"SetY":      func() error { return tr.SetY(leaf, 1) },
		"SetWidth":  func() error { return tr.SetWidth(leaf, 1) },
		"SetHeight": func() error { return tr.SetHeight(leaf, 1) },
		"SetRect":   func() error { return tr.SetRect(leaf, Rect{}) },
	}
	for name, set := range setters {
		if err := set(); !errors.Is(err, errors.ErrCodeAttachedNodeImmutable) {
			t.Errorf("%s error = %v, want %s", name, err, errors.ErrCodeAttachedNodeImmutable)
		}
	}
	if r := mustRect(t, tr, leaf); r != (Rect{Width: 100, Height: 100}) {
		t.Errorf("rect = %+v after rejected setters", r)
	}
}

func TestResolutionFailsWithoutRootGeometry(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Horizontal, WithExtent(100, 100))
	leaf := mustLeaf(t, tr)
	mustAppend(t, tr, root, leaf)

	if w, err := tr.Width(leaf, false); err != nil || w != 100 {
		t.Errorf("Width = %d, %v; want 100", w, err)
	}
	if _, err := tr.X(leaf, false); !errors.Is(err, errors.ErrCodeNoContainer) {
		t.Errorf("X error = %v, want %s", err, errors.ErrCodeNoContainer)
	}
}

func TestZeroWeightTotal(t *testing.T) {
	tr := NewTree()
	root := mustContainer(t, tr, Horizontal, WithRect(Rect{Width: 100, Height: 100}))
	leaf := mustLeaf(t, tr, WithSize(Weight(0)))
	mustAppend(t, tr, root, leaf)

	if w, err := tr.Width(leaf, false); err != nil || w != 0 {
		t.Errorf("Width = %d, %v; want 0", w, err)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %d/%d", r.Right(), r.Bottom())
	}
	if !r.Contains(10, 20) || r.Contains(40, 20) || r.Contains(10, 60) {
		t.Error("Contains edge semantics wrong")
	}
	if (Rect{Width: 0, Height: 5}).IsEmpty() != true || r.IsEmpty() {
		t.Error("IsEmpty wrong")
	}
	if got := r.String(); got != "30x40+10+20" {
		t.Errorf("String = %q", got)
	}
	if got := (Rect{X: -5, Y: 0, Width: 1, Height: 1}).String(); got != "1x1-5+0" {
		t.Errorf("String negative = %q", got)
	}
}
