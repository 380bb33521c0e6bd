package composite

import (
	"fmt"
	"strings"

	"github.com/matzehuels/screengod/pkg/errors"
)

// NodeID is a stable handle to a node within its Tree.
// Handles stay valid for the lifetime of the Tree; removal detaches a node
// but never frees its slot.
type NodeID int

// NoNode is the empty handle returned where no node exists
// (no container, no sibling, empty container ends).
const NoNode NodeID = -1

// Kind distinguishes leaves from containers.
type Kind uint8

const (
	// KindLeaf is a positionable element with no children, typically bound to a window.
	KindLeaf Kind = iota
	// KindContainer owns an ordered chain of children laid out along its direction.
	KindContainer
)

// String returns "leaf" or "container".
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Direction is the main axis along which a container distributes space.
type Direction uint8

const (
	// Horizontal containers pack children left to right and share their height.
	Horizontal Direction = iota
	// Vertical containers pack children top to bottom and share their width.
	Vertical
)

// String returns "horizontal" or "vertical".
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("direction(%d)", d)
}

// ParseDirection accepts "horizontal"/"h" and "vertical"/"v", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown direction %q", s)
}

// field indexes the four memoized geometry values.
type field uint8

const (
	fieldX field = iota
	fieldY
	fieldWidth
	fieldHeight
	numFields
)

var fieldNames = [numFields]string{"x", "y", "width", "height"}

// slot is an optional integer.
type slot struct {
	v  int
	ok bool
}

type node struct {
	kind  Kind
	label string
	size  Size

	container NodeID
	prev      NodeID
	next      NodeID

	cache [numFields]slot

	// Container-only state.
	direction   Direction
	head        NodeID
	tail        NodeID
	count       int
	totalWeight int
}

// Tree is an arena owning every node of one layout.
//
// Nodes are created detached and become attached when inserted into a
// container of the same Tree. Tree is not safe for concurrent use; callers
// sharing one must serialize access.
type Tree struct {
	nodes []node
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes ever created in t.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Option configures a node at construction.
type Option func(t *Tree, id NodeID) error

// WithSize sets the node's size within its future container.
func WithSize(s Size) Option {
	return func(t *Tree, id NodeID) error {
		if err := s.validate(); err != nil {
			return err
		}
		t.nodes[id].size = s
		return nil
	}
}

// WithLabel names the node. Labels are informational and need not be unique
// within a Tree; see Registry for keyed lookup.
func WithLabel(label string) Option {
	return func(t *Tree, id NodeID) error {
		if err := errors.ValidateLabel(label); err != nil {
			return err
		}
		t.nodes[id].label = label
		return nil
	}
}

// WithOrigin sets the explicit position of a root node.
func WithOrigin(x, y int) Option {
	return func(t *Tree, id NodeID) error {
		if err := t.SetX(id, x); err != nil {
			return err
		}
		return t.SetY(id, y)
	}
}

// WithExtent sets the explicit size of a root node.
func WithExtent(width, height int) Option {
	return func(t *Tree, id NodeID) error {
		if err := t.SetWidth(id, width); err != nil {
			return err
		}
		return t.SetHeight(id, height)
	}
}

// WithRect sets the explicit origin and extent of a root node.
func WithRect(r Rect) Option {
	return func(t *Tree, id NodeID) error {
		if err := WithOrigin(r.X, r.Y)(t, id); err != nil {
			return err
		}
		return WithExtent(r.Width, r.Height)(t, id)
	}
}

// NewLeaf creates a detached leaf.
func (t *Tree) NewLeaf(opts ...Option) (NodeID, error) {
	return t.add(node{kind: KindLeaf}, opts)
}

// NewContainer creates a detached container laying out children along dir.
func (t *Tree) NewContainer(dir Direction, opts ...Option) (NodeID, error) {
	if dir != Horizontal && dir != Vertical {
		return NoNode, errors.New(errors.ErrCodeInvalidInput, "unknown direction %s", dir)
	}
	return t.add(node{kind: KindContainer, direction: dir, head: NoNode, tail: NoNode}, opts)
}

func (t *Tree) add(n node, opts []Option) (NodeID, error) {
	n.size = DefaultSize
	n.container, n.prev, n.next = NoNode, NoNode, NoNode

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)

	for _, opt := range opts {
		if err := opt(t, id); err != nil {
			// The slot stays allocated but unreachable; handles are never reused.
			return NoNode, err
		}
	}
	return id, nil
}

// node returns the node for id or a TYPE_MISMATCH error for an unknown handle.
func (t *Tree) node(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, errors.New(errors.ErrCodeTypeMismatch, "node %d does not exist", id)
	}
	return &t.nodes[id], nil
}

// containerNode returns the node for id if it is a container.
func (t *Tree) containerNode(id NodeID) (*node, error) {
	n, err := t.node(id)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case KindContainer:
		return n, nil
	case KindLeaf:
		return nil, errors.New(errors.ErrCodeTypeMismatch, "node %d is a leaf, not a container", id)
	}
	return nil, errors.New(errors.ErrCodeInternal, "node %d has unknown kind %s", id, n.kind)
}

// Valid reports whether id refers to a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Kind returns the node's kind. Unknown handles report KindLeaf.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindLeaf
	}
	return t.nodes[id].kind
}

// IsContainer reports whether id is a container.
func (t *Tree) IsContainer(id NodeID) bool {
	return t.Valid(id) && t.nodes[id].kind == KindContainer
}

// Label returns the node's label, or "" if it has none.
func (t *Tree) Label(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	return t.nodes[id].label
}

// Size returns the node's size descriptor, Weight(1) unless set at construction.
func (t *Tree) Size(id NodeID) Size {
	if !t.Valid(id) {
		return DefaultSize
	}
	return t.nodes[id].size
}

// Container returns the container holding id, or NoNode if id is detached.
func (t *Tree) Container(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.nodes[id].container
}

// IsAttached reports whether id belongs to a container.
func (t *Tree) IsAttached(id NodeID) bool {
	return t.Container(id) != NoNode
}

// Next returns the following sibling, or NoNode.
func (t *Tree) Next(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.nodes[id].next
}

// Prev returns the preceding sibling, or NoNode.
func (t *Tree) Prev(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.nodes[id].prev
}

// Root walks container links up from id and returns the detached ancestor.
func (t *Tree) Root(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	for t.nodes[id].container != NoNode {
		id = t.nodes[id].container
	}
	return id
}

// Depth returns the number of containers above id.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for c := t.Container(id); c != NoNode; c = t.Container(c) {
		depth++
	}
	return depth
}

// isAncestor reports whether a is id itself or one of its containers.
func (t *Tree) isAncestor(a, id NodeID) bool {
	for cur := id; cur != NoNode; cur = t.nodes[cur].container {
		if cur == a {
			return true
		}
	}
	return false
}
