package diagram

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/expr"
	"github.com/matzehuels/screengod/pkg/placement"
)

func compile(t *testing.T, src string) *placement.Placement {
	t.Helper()
	l, err := expr.Compile(src, composite.Rect{Width: 1000, Height: 600})
	if err != nil {
		t.Fatal(err)
	}
	p, err := placement.Export(l.Tree, l.Root)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestToDOT(t *testing.T) {
	p := compile(t, "h(editor=70%, side=v@30%(top, 2))")

	t.Run("simple", func(t *testing.T) {
		dot := ToDOT(p, Options{})
		for _, want := range []string{
			"digraph G {",
			`"n0" [label="horizontal", style="rounded,filled,dashed"`,
			`"n1" [label="editor"];`,
			`"n2" [label="side (vertical)"`,
			`"n4" [label="#4"];`,
			`"n0" -> "n1";`,
			`"n2" -> "n4";`,
		} {
			if !strings.Contains(dot, want) {
				t.Errorf("DOT missing %q:\n%s", want, dot)
			}
		}
		if strings.Contains(dot, "rect:") {
			t.Error("simple DOT should not include geometry")
		}
	})

	t.Run("detailed", func(t *testing.T) {
		dot := ToDOT(p, Options{Detailed: true})
		if !strings.Contains(dot, `label="editor\nsize: 70%\nrect: 700x600+0+0"`) {
			t.Errorf("detailed label missing:\n%s", dot)
		}
	})

	t.Run("edge count", func(t *testing.T) {
		dot := ToDOT(p, Options{})
		if got := strings.Count(dot, "->"); got != len(p.Items)-1 {
			t.Errorf("edges = %d, want %d", got, len(p.Items)-1)
		}
	})
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %s", got)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be returned unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(compile(t, "v(a, b)"), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), "<svg") {
		t.Errorf("unexpected SVG output: %.80s", svg)
	}
}
