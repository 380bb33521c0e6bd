package canvas

import (
	"strings"
	"testing"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/expr"
	"github.com/matzehuels/screengod/pkg/placement"
)

func compile(t testing.TB, src string, r composite.Rect) *placement.Placement {
	t.Helper()
	l, err := expr.Compile(src, r)
	if err != nil {
		t.Fatal(err)
	}
	p, err := placement.Export(l.Tree, l.Root)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRenderSVG(t *testing.T) {
	p := compile(t, "h(code=75%, v@25%(top, bottom))", composite.Rect{X: 100, Y: 100, Width: 800, Height: 400})

	tests := map[string]struct {
		opts    []SVGOption
		want    []string
		notWant []string
	}{
		"default": {
			want: []string{
				`viewBox="0 0 800.0 400.0"`,
				`id="item-1" x="0.0" y="0.0" width="600.0" height="400.0"`,
				`id="item-4" x="600.0" y="200.0" width="200.0" height="200.0"`,
				">code</text>",
				">top</text>",
			},
			notWant: []string{`class="container"`, "200x200+700+300"},
		},
		"containers and rects": {
			opts: []SVGOption{WithContainers(), WithRects()},
			want: []string{`class="container" x="600.0"`, "200x200+700+300"},
		},
		"scaled": {
			opts: []SVGOption{WithScale(0.5)},
			want: []string{`width="400" height="200"`, `id="item-1" x="0.0" y="0.0" width="300.0" height="200.0"`},
		},
		"ignores bad scale": {
			opts: []SVGOption{WithScale(-1)},
			want: []string{`width="800" height="400"`},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svg := string(RenderSVG(p, tc.opts...))
			for _, w := range tc.want {
				if !strings.Contains(svg, w) {
					t.Errorf("missing %q in:\n%s", w, svg)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(svg, w) {
					t.Errorf("unexpected %q in:\n%s", w, svg)
				}
			}
			if got := strings.Count(svg, `class="leaf"`); got != 3 {
				t.Errorf("leaf rects = %d, want 3", got)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	p := compile(t, "h(a, b)", composite.Rect{Width: 1000, Height: 600})
	g := NewGrid(p, 10, 3)

	want := []string{
		"┌───┐┌───┐",
		"│ a ││ b │",
		"└───┘└───┘",
	}
	got := g.Lines()
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}

	a, _ := p.Find("a")
	b, _ := p.Find("b")
	if g.Owner(0, 1) != a.ID || g.Owner(9, 1) != b.ID {
		t.Errorf("owners = %d, %d", g.Owner(0, 1), g.Owner(9, 1))
	}
	if g.Owner(10, 0) != -1 || g.Owner(-1, 0) != -1 {
		t.Error("out of range cells should have no owner")
	}
	if cols, rows := g.Size(); cols != 10 || rows != 3 {
		t.Errorf("Size = %d, %d", cols, rows)
	}
}

func TestGridEdgeCases(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		p := compile(t, "h(a)", composite.Rect{Width: 10, Height: 10})
		if s := NewGrid(p, 0, 0).String(); s != "" {
			t.Errorf("String = %q", s)
		}
	})

	t.Run("tiny leaf still drawn", func(t *testing.T) {
		p := compile(t, "h(1px, 999px)", composite.Rect{Width: 1000, Height: 100})
		g := NewGrid(p, 20, 4)
		if g.Owner(0, 0) == -1 {
			t.Error("1px leaf not drawn")
		}
	})

	t.Run("long label truncated", func(t *testing.T) {
		p := compile(t, "v(averyveryverylonglabel)", composite.Rect{Width: 100, Height: 100})
		g := NewGrid(p, 8, 3)
		if line := g.Lines()[1]; line != "│averyv│" {
			t.Errorf("middle row = %q", line)
		}
	})
}
