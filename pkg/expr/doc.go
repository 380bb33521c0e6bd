// Package expr parses a compact text notation for layouts and builds it into
// a [composite.Tree].
//
// # Grammar
//
//	element   = [ label "=" ] ( container | size | label )
//	container = ( "h" | "v" ) [ "@" size ] "(" [ element { "," element } ] ")"
//	size      = digits | digits "%" | digits "px"
//
// Whitespace between tokens is ignored. A bare label is a leaf of weight 1.
// "h" lays children out left to right, "v" top to bottom, and "@size" gives
// a container its size within its parent.
//
//	h(editor, v(term=30%, logs=70%))
//	v@50%(top, bottom=2)
//	h(sidebar=300px, main=1620px)
//
// # Errors
//
// Syntax errors fail with INVALID_EXPRESSION wrapping a [*SyntaxError] that
// carries the byte offset. Labels must be unique within one expression.
// Siblings mixing units fail at build time with UNIT_CONFLICT.
package expr
