// Package composite is the layout engine: a tree of rectangular nodes whose
// geometry is derived by recursively splitting each container's space among
// its children along the container's direction.
//
// # Model
//
// A [Tree] is an arena that owns every node. Nodes are addressed by stable
// [NodeID] handles and come in two kinds: leaves, which are eventually bound
// to real windows, and containers, which keep a doubly-linked chain of
// children laid out along a [Direction].
//
// Each node has a [Size] describing its extent along its container's main
// axis:
//
//   - Weight(n): n shares of the container's extent, out of the total weight
//     of all siblings
//   - Percent(n): n percent of the container's extent (sums over 100 overflow)
//   - Pixel(n): exactly n, whatever the container's size
//
// All children of one container must use the same unit.
//
// # Geometry
//
// A root container is detached and has its origin and extent set explicitly.
// Every other node pulls its geometry from its container on demand:
//
//   - cross axis: origin and extent equal the container's
//   - main axis: extent from the Size, origin packed after the previous sibling
//
// Results are memoized per node. Inserting or removing a node clears the
// caches of its subtree; siblings keep theirs until they are resolved with
// force=true or cleared with [Tree.Invalidate].
//
// # Usage
//
//	t := composite.NewTree()
//	root, _ := t.NewContainer(composite.Horizontal, composite.WithRect(composite.Rect{Width: 900, Height: 600}))
//	a, _ := t.NewLeaf()
//	b, _ := t.NewLeaf(composite.WithSize(composite.Weight(2)))
//	_ = t.Append(root, a)
//	_ = t.Append(root, b)
//	r, _ := t.Rect(b, false) // {X:300 Y:0 Width:600 Height:600}
//
// # Errors
//
// Failures carry the codes of [github.com/matzehuels/screengod/pkg/errors]:
// INVALID_UNIT, TYPE_MISMATCH, UNIT_CONFLICT, ATTACHED_NODE_IMMUTABLE,
// NO_CONTAINER, NOT_A_MEMBER and CYCLE. None of them leave a tree partially
// modified.
//
// The engine is synchronous and not safe for concurrent use.
package composite
