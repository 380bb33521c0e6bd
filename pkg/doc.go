// Package pkg provides the libraries behind screengod, a tool that tiles
// windows into layouts built from nested rows and columns.
//
// # Overview
//
// A layout expression such as
//
//	h(editor=60%, v@40%(term, logs))
//
// describes a tree of containers and leaves. The packages turn it into
// screen rectangles and move windows into them:
//
//	layout expression
//	       ↓
//	  [expr] parse and build a [composite] tree
//	       ↓
//	  [composite] resolve geometry lazily, cached per node
//	       ↓
//	  [placement] flatten into rectangles (JSON)
//	       ↓
//	  [window] move bound windows        [render] draw SVG/PNG/PDF/DOT
//
// [pipeline] runs these stages for both the CLI and the HTTP API.
//
// # Main Packages
//
//   - [composite]: the layout engine. Items and containers in an arena,
//     sizes in weights, percents or pixels, doubly linked siblings, and
//     memoized geometry.
//   - [expr]: the layout expression language.
//   - [placement]: resolved rectangles and their JSON form.
//   - [window]: window manager interface, X11 and in-memory managers, and
//     the Placer that moves windows concurrently.
//   - [pipeline]: layout, apply and render stages with observability hooks.
//   - [render], [render/diagram], [render/canvas]: output formats.
//   - [cache]: rendered artifact cache.
//   - [errors]: coded errors shared by every package.
//   - [observability]: hooks for layout, window and HTTP events.
//   - [buildinfo]: version information set at build time.
//
// # Quick Start
//
//	l, err := expr.Compile("h(editor=60%, v@40%(term, logs))", composite.Rect{Width: 1920, Height: 1080})
//	if err != nil {
//	    return err
//	}
//	p, err := placement.Export(l.Tree, l.Root)
//	if err != nil {
//	    return err
//	}
//	for _, it := range p.Leaves() {
//	    fmt.Println(it.Label, it.Rect)
//	}
//
// [composite]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/composite
// [expr]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/expr
// [placement]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/placement
// [window]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/window
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/render/diagram
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/render/canvas
// [cache]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/screengod/pkg/buildinfo
package pkg
