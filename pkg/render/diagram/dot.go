package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/screengod/pkg/placement"
	"github.com/matzehuels/screengod/pkg/render"
)

// Options configures layout tree diagrams.
type Options struct {
	// Detailed adds size and resolved geometry to every node label.
	// When false, leaves show their label and containers their direction.
	Detailed bool
}

// ToDOT converts a placement to Graphviz DOT format. Each node of the
// layout tree becomes a box and each container gets an edge to each child,
// in layout order. The result can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Containers are drawn with dashed outlines and grey fill to set them
// apart from the leaves that end up on screen.
func ToDOT(p *placement.Placement, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, it := range p.Items {
		attrs := fmtAttrs(it, fmtLabel(it, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(it.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, it := range p.Items {
		if it.Parent < 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(it.Parent), nodeName(it.ID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int) string {
	return "n" + strconv.Itoa(id)
}

func fmtLabel(it placement.Item, detailed bool) string {
	title := it.Label
	switch {
	case title != "" && !it.IsLeaf():
		title += " (" + it.Direction + ")"
	case title == "" && !it.IsLeaf():
		title = it.Direction
	case title == "":
		title = "#" + strconv.Itoa(it.ID)
	}
	if !detailed {
		return title
	}

	parts := []string{
		"size: " + it.Size.String(),
		"rect: " + it.Rect.String(),
	}
	return title + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(it placement.Item, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !it.IsLeaf() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
