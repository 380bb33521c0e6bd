package placement

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

// Node kinds as they appear in JSON.
const (
	KindLeaf      = "leaf"
	KindContainer = "container"
)

// Placement is the fully resolved geometry of one layout tree.
type Placement struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Items  []Item `json:"items"`
}

// Item is one resolved node. Items are listed depth-first, parents first.
type Item struct {
	ID     int            `json:"id"`
	Parent int            `json:"parent"`
	Label  string         `json:"label,omitempty"`
	Kind   string         `json:"kind"`
	Depth  int            `json:"depth"`
	Size   composite.Size `json:"size"`
	Rect   composite.Rect `json:"rect"`

	// Direction is "horizontal" or "vertical" for containers.
	Direction string `json:"direction,omitempty"`
}

// IsLeaf reports whether the item is a leaf.
func (it Item) IsLeaf() bool { return it.Kind == KindLeaf }

// Export resolves every node under root and records it.
//
// Geometry is resolved through the tree's cache, so Export also warms it.
// Resolution failures (a root without geometry, for example) are returned
// unchanged.
func Export(t *composite.Tree, root composite.NodeID) (*Placement, error) {
	if !t.Valid(root) {
		return nil, errors.New(errors.ErrCodeTypeMismatch, "node %d does not exist", root)
	}
	rootRect, err := t.Rect(root, false)
	if err != nil {
		return nil, err
	}

	p := &Placement{
		X:      rootRect.X,
		Y:      rootRect.Y,
		Width:  rootRect.Width,
		Height: rootRect.Height,
	}
	for id, depth := range t.All(root) {
		r, err := t.Rect(id, false)
		if err != nil {
			return nil, err
		}
		parent := -1
		if depth > 0 {
			parent = int(t.Container(id))
		}
		it := Item{
			ID:     int(id),
			Parent: parent,
			Label:  t.Label(id),
			Kind:   t.Kind(id).String(),
			Depth:  depth,
			Size:   t.Size(id),
			Rect:   r,
		}
		if dir, err := t.Direction(id); err == nil {
			it.Direction = dir.String()
		}
		p.Items = append(p.Items, it)
	}
	return p, nil
}

// Leaves returns the leaf items in layout order.
func (p *Placement) Leaves() []Item {
	var out []Item
	for _, it := range p.Items {
		if it.IsLeaf() {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the item with the given label.
func (p *Placement) Find(label string) (Item, bool) {
	if label == "" {
		return Item{}, false
	}
	for _, it := range p.Items {
		if it.Label == label {
			return it, true
		}
	}
	return Item{}, false
}

// Labels returns the labels of all labeled leaves in layout order.
func (p *Placement) Labels() []string {
	var out []string
	for _, it := range p.Leaves() {
		if it.Label != "" {
			out = append(out, it.Label)
		}
	}
	return out
}

// WriteJSON encodes p as indented JSON to w.
func (p *Placement) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes p to a JSON file at path.
func (p *Placement) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return p.WriteJSON(f)
}

// ReadJSON decodes a placement written by WriteJSON.
func ReadJSON(r io.Reader) (*Placement, error) {
	var p Placement
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for _, it := range p.Items {
		if it.Kind != KindLeaf && it.Kind != KindContainer {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item %d: unknown kind %q", it.ID, it.Kind)
		}
	}
	return &p, nil
}
