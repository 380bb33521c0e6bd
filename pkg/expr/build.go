package expr

import (
	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

// Layout is a compiled expression: a tree and its detached root container.
type Layout struct {
	Tree *composite.Tree
	Root composite.NodeID
	AST  *Node
}

// Build creates the nodes described by n in t and links them.
// It returns the root, which is left detached. Failures from the engine,
// such as UNIT_CONFLICT between siblings, keep their code and gain the
// offending element's offset.
func Build(t *composite.Tree, n *Node) (composite.NodeID, error) {
	opts := []composite.Option{composite.WithSize(n.Size)}
	if n.Label != "" {
		opts = append(opts, composite.WithLabel(n.Label))
	}

	if !n.IsContainer() {
		id, err := t.NewLeaf(opts...)
		return id, located(err, n)
	}

	id, err := t.NewContainer(n.Direction, opts...)
	if err != nil {
		return composite.NoNode, located(err, n)
	}
	for _, c := range n.Children {
		child, err := Build(t, c)
		if err != nil {
			return composite.NoNode, err
		}
		if err := t.Append(id, child); err != nil {
			return composite.NoNode, located(err, c)
		}
	}
	return id, nil
}

// Compile parses src and builds it into a new tree whose root container
// covers rect. The root's own size, if written, is ignored.
func Compile(src string, rect composite.Rect) (*Layout, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if !ast.IsContainer() {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression,
			&SyntaxError{Offset: ast.Offset, Message: "root must be h(...) or v(...)"}, "parse expression")
	}

	t := composite.NewTree()
	root, err := Build(t, ast)
	if err != nil {
		return nil, err
	}
	if err := t.SetRect(root, rect); err != nil {
		return nil, err
	}
	return &Layout{Tree: t, Root: root, AST: ast}, nil
}

// Offset returns the source offset carried by a parse error.
func Offset(err error) (int, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Offset, true
	}
	return 0, false
}

func located(err error, n *Node) error {
	if err == nil {
		return nil
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.New(code, "element at offset %d: %s", n.Offset, errors.UserMessage(err))
}
