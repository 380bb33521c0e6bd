// Package placement flattens a resolved layout tree into a list of
// rectangles that can be serialized, rendered, or applied to windows.
//
// # JSON Format
//
//	{
//	  "x": 0, "y": 0, "width": 1920, "height": 1080,
//	  "items": [
//	    {"id": 0, "parent": -1, "kind": "container", "depth": 0, "size": 1, "direction": "horizontal",
//	     "rect": {"x": 0, "y": 0, "width": 1920, "height": 1080}},
//	    {"id": 1, "parent": 0, "label": "editor", "kind": "leaf", "depth": 1,
//	     "size": "60%", "rect": {"x": 0, "y": 0, "width": 1152, "height": 1080}}
//	  ]
//	}
//
// Weights serialize as JSON numbers, percent and pixel sizes as strings.
// Items are ordered depth-first with parents before their children.
package placement
