// Package render draws resolved layouts.
//
// # Overview
//
// This package holds the format conversion shared by its subpackages:
//
//   - [diagram] draws the layout tree as a Graphviz node-link diagram
//   - [canvas] draws the layout itself, as SVG rectangles or a text grid
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := canvas.RenderSVG(p)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
