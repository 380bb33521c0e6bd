package composite

import (
	"fmt"
	"io"
	"strings"
)

const dumpFormat = "%s%12s: %v\n"

type dumpRow struct {
	key string
	val any
}

// Dump writes a debug listing of root and its descendants to w: kind,
// label, size and the resolved geometry of every node, indented by depth.
// Geometry is resolved (and cached) as a side effect.
func (t *Tree) Dump(w io.Writer, root NodeID) error {
	for id, depth := range t.All(root) {
		r, err := t.Rect(id, false)
		if err != nil {
			return err
		}

		indent := strings.Repeat("  ", depth)
		n := t.nodes[id]
		rows := []dumpRow{
			{"node", id},
			{"kind", n.kind},
			{"label", n.label},
			{"size", n.size},
			{"width", r.Width},
			{"height", r.Height},
			{"x", r.X},
			{"y", r.Y},
		}
		if n.kind == KindContainer {
			rows = append(rows, dumpRow{"direction", n.direction})
		}

		for _, row := range rows {
			if row.key == "label" && n.label == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, dumpFormat, indent, row.key, row.val); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
