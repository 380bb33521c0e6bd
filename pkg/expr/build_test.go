package expr

import (
	"testing"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/errors"
)

func TestCompile(t *testing.T) {
	l, err := Compile("h(editor, v(term=30%, logs=70%))", composite.Rect{Width: 1200, Height: 800})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	want := map[string]composite.Rect{
		"editor": {X: 0, Y: 0, Width: 600, Height: 800},
		"term":   {X: 600, Y: 0, Width: 600, Height: 240},
		"logs":   {X: 600, Y: 240, Width: 600, Height: 560},
	}
	for label, rect := range want {
		id, ok := l.Tree.Find(l.Root, label)
		if !ok {
			t.Fatalf("label %q not found", label)
		}
		got, err := l.Tree.Rect(id, false)
		if err != nil {
			t.Fatalf("Rect(%s) error: %v", label, err)
		}
		if got != rect {
			t.Errorf("%s = %v, want %v", label, got, rect)
		}
	}

	if l.Tree.IsAttached(l.Root) {
		t.Error("root must be detached")
	}
	if l.AST == nil || l.AST.Count() != l.Tree.Len() {
		t.Errorf("AST count %d != tree len %d", l.AST.Count(), l.Tree.Len())
	}
}

func TestCompileIgnoresRootSize(t *testing.T) {
	l, err := Compile("h@25%(a)", composite.Rect{X: 5, Y: 5, Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	id, _ := l.Tree.Find(l.Root, "a")
	if r, _ := l.Tree.Rect(id, false); r != (composite.Rect{X: 5, Y: 5, Width: 100, Height: 100}) {
		t.Errorf("a = %v", r)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := map[string]struct {
		input    string
		rect     composite.Rect
		wantCode errors.Code
	}{
		"unit conflict": {
			input:    "h(a=50%, b)",
			rect:     composite.Rect{Width: 10, Height: 10},
			wantCode: errors.ErrCodeUnitConflict,
		},
		"leaf root": {
			input:    "solo",
			rect:     composite.Rect{Width: 10, Height: 10},
			wantCode: errors.ErrCodeInvalidExpression,
		},
		"syntax": {
			input:    "h(",
			rect:     composite.Rect{Width: 10, Height: 10},
			wantCode: errors.ErrCodeInvalidExpression,
		},
		"negative screen": {
			input:    "h(a)",
			rect:     composite.Rect{Width: -1, Height: 10},
			wantCode: errors.ErrCodeInvalidGeometry,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Compile(tt.input, tt.rect)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Compile(%q) error = %v, want %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestBuildLocatesUnitConflict(t *testing.T) {
	ast, err := Parse("h(a=50%, b)")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Build(composite.NewTree(), ast)
	if !errors.Is(err, errors.ErrCodeUnitConflict) {
		t.Fatalf("Build error = %v", err)
	}
	if got := errors.UserMessage(err); got != "element at offset 9: invalid unit weight: container 0 uses percent" {
		t.Errorf("message = %q", got)
	}
}
