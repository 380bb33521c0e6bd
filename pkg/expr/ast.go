package expr

import (
	"strings"

	"github.com/matzehuels/screengod/pkg/composite"
)

// Node is one element of a parsed expression.
type Node struct {
	Kind      composite.Kind
	Label     string
	Size      composite.Size
	Sized     bool // Size was written explicitly
	Direction composite.Direction
	Children  []*Node
	Offset    int // byte offset of the element in the source
}

// IsContainer reports whether n is an h(...) or v(...) element.
func (n *Node) IsContainer() bool {
	return n.Kind == composite.KindContainer
}

// Labels returns every label in n in depth-first order.
func (n *Node) Labels() []string {
	var out []string
	n.walk(func(m *Node) {
		if m.Label != "" {
			out = append(out, m.Label)
		}
	})
	return out
}

// Count returns the number of elements in n, including n.
func (n *Node) Count() int {
	total := 0
	n.walk(func(*Node) { total++ })
	return total
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// String formats n in canonical form. Parsing the result yields an
// equivalent tree.
func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder) {
	if n.Label != "" && (n.IsContainer() || n.Sized) {
		sb.WriteString(n.Label)
		sb.WriteByte('=')
	}

	if !n.IsContainer() {
		if n.Sized || n.Label == "" {
			sb.WriteString(n.Size.String())
		} else {
			sb.WriteString(n.Label)
		}
		return
	}

	if n.Direction == composite.Vertical {
		sb.WriteByte('v')
	} else {
		sb.WriteByte('h')
	}
	if n.Sized {
		sb.WriteByte('@')
		sb.WriteString(n.Size.String())
	}
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		c.format(sb)
	}
	sb.WriteByte(')')
}
