// Package diagram renders layout trees as node-link diagrams.
//
// # Overview
//
// Where [canvas] draws the rectangles a layout produces, this package draws
// the tree that produced them: one box per container or leaf, with an arrow
// from every container to each of its children.
//
// # Usage
//
// Convert a placement to DOT format, then render to SVG:
//
//	dot := diagram.ToDOT(p, diagram.Options{Detailed: true})
//	svg, err := diagram.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := diagram.RenderPDF(ctx, dot)
//	png, err := diagram.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: When true, node labels include the size and resolved rectangle
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [canvas]: github.com/matzehuels/screengod/pkg/render/canvas
package diagram
