package composite

import (
	"github.com/matzehuels/screengod/pkg/errors"
)

// Direction returns the container's main axis.
func (t *Tree) Direction(c NodeID) (Direction, error) {
	n, err := t.containerNode(c)
	if err != nil {
		return 0, err
	}
	return n.direction, nil
}

// First returns the container's first child, or NoNode if it is empty or not a container.
func (t *Tree) First(c NodeID) NodeID {
	if !t.IsContainer(c) {
		return NoNode
	}
	return t.nodes[c].head
}

// Last returns the container's last child, or NoNode if it is empty or not a container.
func (t *Tree) Last(c NodeID) NodeID {
	if !t.IsContainer(c) {
		return NoNode
	}
	return t.nodes[c].tail
}

// ChildCount returns the number of direct children of c.
func (t *Tree) ChildCount(c NodeID) int {
	if !t.IsContainer(c) {
		return 0
	}
	return t.nodes[c].count
}

// ItemCount returns the proportional-sizing denominator of c: the sum of the
// weights of its children. It is zero, and unused, when the children are
// sized in percent or pixels.
func (t *Tree) ItemCount(c NodeID) int {
	if !t.IsContainer(c) {
		return 0
	}
	return t.nodes[c].totalWeight
}

// Unit returns the unit shared by c's children.
// ok is false when c has no children and therefore no unit yet.
func (t *Tree) Unit(c NodeID) (unit Unit, ok bool) {
	head := t.First(c)
	if head == NoNode {
		return 0, false
	}
	return t.nodes[head].size.Unit, true
}

// Validate checks that n may be inserted into container c.
//
// It fails with TYPE_MISMATCH if c is not a container or n does not exist,
// with CYCLE if n is c or one of its ancestors, and with UNIT_CONFLICT if
// n's unit differs from the unit of c's other children.
func (t *Tree) Validate(c, n NodeID) error {
	cn, err := t.containerNode(c)
	if err != nil {
		return err
	}
	nn, err := t.node(n)
	if err != nil {
		return err
	}
	if t.isAncestor(n, c) {
		return errors.New(errors.ErrCodeCycle, "node %d cannot be inserted into itself or its descendant %d", n, c)
	}

	// n may already be a child of c; compare against any other child.
	sibling := cn.head
	if sibling == n {
		sibling = nn.next
	}
	if sibling == NoNode {
		return nil
	}
	if want := t.nodes[sibling].size.Unit; want != nn.size.Unit {
		return errors.New(errors.ErrCodeUnitConflict, "invalid unit %s: container %d uses %s", nn.size.Unit, c, want)
	}
	return nil
}

// CanInsert is the non-failing form of Validate.
func (t *Tree) CanInsert(c, n NodeID) bool {
	return t.Validate(c, n) == nil
}

// Append inserts n after c's current last child.
//
// If n is attached elsewhere (or already in c) it is first detached, which
// clears its cached geometry and that of its subtree. On error c is unchanged.
func (t *Tree) Append(c, n NodeID) error {
	if err := t.Validate(c, n); err != nil {
		return err
	}
	t.detach(n)
	t.link(c, n, t.nodes[c].tail, NoNode)
	return nil
}

// InsertBefore inserts n immediately before target, which must be a child of c.
func (t *Tree) InsertBefore(c, n, target NodeID) error {
	if err := t.checkInsert(c, n, target); err != nil {
		return err
	}
	t.detach(n)
	t.link(c, n, t.nodes[target].prev, target)
	return nil
}

// InsertAfter inserts n immediately after target, which must be a child of c.
func (t *Tree) InsertAfter(c, n, target NodeID) error {
	if err := t.checkInsert(c, n, target); err != nil {
		return err
	}
	t.detach(n)
	t.link(c, n, target, t.nodes[target].next)
	return nil
}

func (t *Tree) checkInsert(c, n, target NodeID) error {
	if err := t.Validate(c, n); err != nil {
		return err
	}
	if err := t.checkMember(c, target); err != nil {
		return err
	}
	if n == target {
		return errors.New(errors.ErrCodeNotAMember, "node %d cannot be inserted relative to itself", n)
	}
	return nil
}

// Remove unlinks n from c and detaches it.
// It fails with NOT_A_MEMBER if n is not a child of c.
func (t *Tree) Remove(c, n NodeID) error {
	if _, err := t.containerNode(c); err != nil {
		return err
	}
	if err := t.checkMember(c, n); err != nil {
		return err
	}
	t.detach(n)
	return nil
}

// Reset detaches id from its container, if any, and clears its links and
// all four cached geometry values. Descendants keep their attachment but
// lose their cached geometry. Reset is idempotent.
func (t *Tree) Reset(id NodeID) error {
	if _, err := t.node(id); err != nil {
		return err
	}
	t.detach(id)
	return nil
}

func (t *Tree) checkMember(c, n NodeID) error {
	if _, err := t.node(n); err != nil {
		return err
	}
	if t.nodes[n].container != c {
		return errors.New(errors.ErrCodeNotAMember, "node %d is not a child of container %d", n, c)
	}
	return nil
}

// link attaches the detached node n to c between prev and next.
func (t *Tree) link(c, n, prev, next NodeID) {
	cn := &t.nodes[c]
	nn := &t.nodes[n]

	nn.container, nn.prev, nn.next = c, prev, next
	if prev != NoNode {
		t.nodes[prev].next = n
	} else {
		cn.head = n
	}
	if next != NoNode {
		t.nodes[next].prev = n
	} else {
		cn.tail = n
	}

	cn.count++
	if nn.size.Unit == UnitWeight {
		cn.totalWeight += nn.size.Value
	}
}

// detach unlinks n from its container, keeping the container's chain and
// weight total consistent, then clears n's links and caches.
func (t *Tree) detach(n NodeID) {
	nn := &t.nodes[n]
	if c := nn.container; c != NoNode {
		cn := &t.nodes[c]
		if nn.prev != NoNode {
			t.nodes[nn.prev].next = nn.next
		} else {
			cn.head = nn.next
		}
		if nn.next != NoNode {
			t.nodes[nn.next].prev = nn.prev
		} else {
			cn.tail = nn.prev
		}

		cn.count--
		if nn.size.Unit == UnitWeight {
			cn.totalWeight -= nn.size.Value
		}
	}

	nn.container, nn.prev, nn.next = NoNode, NoNode, NoNode
	nn.cache = [numFields]slot{}
	t.invalidateChildren(n)
}
