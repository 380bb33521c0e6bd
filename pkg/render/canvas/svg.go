package canvas

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/screengod/pkg/placement"
)

// Palette cycled through for leaf fills.
var palette = []string{
	"#8ecae6", "#ffb703", "#90be6d", "#f28482", "#cdb4db", "#f6bd60", "#84a59d", "#a2d2ff",
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	containers bool
	rects      bool
	scale      float64
}

// WithContainers outlines container rectangles with dashed strokes.
func WithContainers() SVGOption { return func(r *svgRenderer) { r.containers = true } }

// WithRects prints each leaf's geometry below its label.
func WithRects() SVGOption { return func(r *svgRenderer) { r.rects = true } }

// WithScale multiplies all coordinates. Non-positive values are ignored.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderSVG draws every leaf of p as a filled rectangle at its resolved
// position relative to the placement origin.
func RenderSVG(p *placement.Placement, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := float64(p.Width)*r.scale, float64(p.Height)*r.scale
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#f8f9fa" stroke="#343a40" stroke-width="2"/>`+"\n", w, h)

	leaf := 0
	for _, it := range p.Items {
		x, y := float64(it.Rect.X-p.X)*r.scale, float64(it.Rect.Y-p.Y)*r.scale
		iw, ih := float64(it.Rect.Width)*r.scale, float64(it.Rect.Height)*r.scale

		if !it.IsLeaf() {
			if r.containers && it.Parent >= 0 {
				fmt.Fprintf(&buf, `  <rect class="container" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#6c757d" stroke-dasharray="6 4"/>`+"\n",
					x, y, iw, ih)
			}
			continue
		}

		fill := palette[leaf%len(palette)]
		leaf++
		fmt.Fprintf(&buf, `  <rect class="leaf" id="item-%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#212529" stroke-width="1"/>`+"\n",
			it.ID, x, y, iw, ih, fill)

		cx, cy := x+iw/2, y+ih/2
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f">%s</text>`+"\n",
			cx, cy, fontSize(iw, ih), html.EscapeString(itemTitle(it)))
		if r.rects {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="%.0f" fill="#495057">%s</text>`+"\n",
				cx, cy+fontSize(iw, ih), fontSize(iw, ih)*0.6, it.Rect.String())
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func itemTitle(it placement.Item) string {
	if it.Label != "" {
		return it.Label
	}
	return fmt.Sprintf("#%d", it.ID)
}

func fontSize(w, h float64) float64 {
	s := min(w, h) / 8
	return max(10, min(s, 36))
}
