package composite

import "iter"

// Children returns an iterator over the direct children of c in list order.
//
// The sequence follows live sibling links, so it is restartable and always
// reflects the current chain. Removing the child currently being visited
// ends the iteration early, since its next link is cleared.
func (t *Tree) Children(c NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id := t.First(c); id != NoNode; id = t.nodes[id].next {
			if !yield(id) {
				return
			}
		}
	}
}

// All returns a depth-first, pre-order iterator over root and its
// descendants, yielding each node with its depth below root.
func (t *Tree) All(root NodeID) iter.Seq2[NodeID, int] {
	return func(yield func(NodeID, int) bool) {
		if !t.Valid(root) {
			return
		}
		t.walk(root, 0, yield)
	}
}

func (t *Tree) walk(id NodeID, depth int, yield func(NodeID, int) bool) bool {
	if !yield(id, depth) {
		return false
	}
	for c := t.First(id); c != NoNode; c = t.nodes[c].next {
		if !t.walk(c, depth+1, yield) {
			return false
		}
	}
	return true
}

// Leaves returns the leaves under root in depth-first order.
// A leaf root yields itself; an empty container yields nothing.
func (t *Tree) Leaves(root NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for id := range t.All(root) {
			if t.nodes[id].kind == KindLeaf && !yield(id) {
				return
			}
		}
	}
}

// Find returns the first node under root carrying label, in depth-first order.
func (t *Tree) Find(root NodeID, label string) (NodeID, bool) {
	if label == "" {
		return NoNode, false
	}
	for id := range t.All(root) {
		if t.nodes[id].label == label {
			return id, true
		}
	}
	return NoNode, false
}
