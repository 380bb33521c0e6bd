package composite

import (
	"github.com/matzehuels/screengod/pkg/errors"
)

// X returns the node's left edge. The cached value is returned unless force
// is set or nothing is cached yet, in which case it is resolved from the
// owning container.
func (t *Tree) X(id NodeID, force bool) (int, error) { return t.resolve(id, fieldX, force) }

// Y returns the node's top edge. See X for caching.
func (t *Tree) Y(id NodeID, force bool) (int, error) { return t.resolve(id, fieldY, force) }

// Width returns the node's width. See X for caching.
func (t *Tree) Width(id NodeID, force bool) (int, error) { return t.resolve(id, fieldWidth, force) }

// Height returns the node's height. See X for caching.
func (t *Tree) Height(id NodeID, force bool) (int, error) { return t.resolve(id, fieldHeight, force) }

// Rect resolves all four geometry values of id.
func (t *Tree) Rect(id NodeID, force bool) (Rect, error) {
	var (
		r   Rect
		err error
	)
	if r.X, err = t.X(id, force); err != nil {
		return Rect{}, err
	}
	if r.Y, err = t.Y(id, force); err != nil {
		return Rect{}, err
	}
	if r.Width, err = t.Width(id, force); err != nil {
		return Rect{}, err
	}
	if r.Height, err = t.Height(id, force); err != nil {
		return Rect{}, err
	}
	return r, nil
}

// SetX sets the left edge of a detached node.
// Attached nodes fail with ATTACHED_NODE_IMMUTABLE.
func (t *Tree) SetX(id NodeID, x int) error {
	if err := errors.ValidateCoordinate("x", x); err != nil {
		return err
	}
	return t.set(id, fieldX, x)
}

// SetY sets the top edge of a detached node.
func (t *Tree) SetY(id NodeID, y int) error {
	if err := errors.ValidateCoordinate("y", y); err != nil {
		return err
	}
	return t.set(id, fieldY, y)
}

// SetWidth sets the width of a detached root. Children are sized by Size.
func (t *Tree) SetWidth(id NodeID, w int) error {
	if err := errors.ValidateExtent("width", w); err != nil {
		return err
	}
	return t.set(id, fieldWidth, w)
}

// SetHeight sets the height of a detached root. Children are sized by Size.
func (t *Tree) SetHeight(id NodeID, h int) error {
	if err := errors.ValidateExtent("height", h); err != nil {
		return err
	}
	return t.set(id, fieldHeight, h)
}

// SetRect sets all four values of a detached root.
func (t *Tree) SetRect(id NodeID, r Rect) error {
	return WithRect(r)(t, id)
}

// Invalidate clears the cached geometry of id's descendants, and of id itself
// when it is attached. Explicit values of a detached root are kept.
func (t *Tree) Invalidate(id NodeID) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if n.container != NoNode {
		n.cache = [numFields]slot{}
	}
	t.invalidateChildren(id)
	return nil
}

func (t *Tree) invalidateChildren(id NodeID) {
	if t.nodes[id].kind != KindContainer {
		return
	}
	for c := t.nodes[id].head; c != NoNode; c = t.nodes[c].next {
		t.nodes[c].cache = [numFields]slot{}
		t.invalidateChildren(c)
	}
}

func (t *Tree) set(id NodeID, f field, v int) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if n.container != NoNode {
		if f == fieldWidth || f == fieldHeight {
			return errors.New(errors.ErrCodeAttachedNodeImmutable, "node %d is attached: use its size to set the %s", id, fieldNames[f])
		}
		return errors.New(errors.ErrCodeAttachedNodeImmutable, "node %d is attached: %s is calculated automatically", id, fieldNames[f])
	}
	n.cache[f] = slot{v: v, ok: true}
	return nil
}

// resolve returns the memoized value of f or computes it from the container.
// A detached node only ever has explicitly set values; force cannot
// recompute them.
func (t *Tree) resolve(id NodeID, f field, force bool) (int, error) {
	n, err := t.node(id)
	if err != nil {
		return 0, err
	}
	if n.cache[f].ok && (!force || n.container == NoNode) {
		return n.cache[f].v, nil
	}
	if n.container == NoNode {
		return 0, errors.New(errors.ErrCodeNoContainer, "node %d has no container and no explicit %s", id, fieldNames[f])
	}

	v, err := t.compute(id, f)
	if err != nil {
		return 0, err
	}
	t.nodes[id].cache[f] = slot{v: v, ok: true}
	return v, nil
}

// compute applies the layout formula for one field of an attached node.
//
// On the cross axis the node inherits the container's origin and extent.
// On the main axis its extent comes from its Size and its origin is the
// previous sibling's origin plus extent, or the container's origin for the
// first child.
func (t *Tree) compute(id NodeID, f field) (int, error) {
	n := t.nodes[id]
	c, err := t.containerNode(n.container)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "node %d has an invalid container", id)
	}

	mainPos, mainExt := fieldX, fieldWidth
	if c.direction == Vertical {
		mainPos, mainExt = fieldY, fieldHeight
	}

	switch f {
	case mainExt:
		base, err := t.resolve(n.container, f, false)
		if err != nil {
			return 0, err
		}
		return n.size.extent(base, c.totalWeight), nil
	case mainPos:
		if n.prev == NoNode {
			return t.resolve(n.container, f, false)
		}
		pos, err := t.resolve(n.prev, mainPos, false)
		if err != nil {
			return 0, err
		}
		ext, err := t.resolve(n.prev, mainExt, false)
		if err != nil {
			return 0, err
		}
		return pos + ext, nil
	default:
		return t.resolve(n.container, f, false)
	}
}
