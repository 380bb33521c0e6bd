package expr_test

import (
	"fmt"

	"github.com/matzehuels/screengod/pkg/composite"
	"github.com/matzehuels/screengod/pkg/expr"
)

func ExampleCompile() {
	l, err := expr.Compile("v(top=1, h(left, right=2))", composite.Rect{Width: 900, Height: 600})
	if err != nil {
		fmt.Println(err)
		return
	}
	for leaf := range l.Tree.Leaves(l.Root) {
		r, _ := l.Tree.Rect(leaf, false)
		fmt.Printf("%-5s %v\n", l.Tree.Label(leaf), r)
	}
	// Output:
	// top   900x300+0+0
	// left  300x300+0+300
	// right 600x300+300+300
}

func ExampleParse() {
	n, _ := expr.Parse("  h( a , b = 2 , v@40%( c ) )")
	fmt.Println(n)

	_, err := expr.Parse("h(a, a)")
	fmt.Println(err)
	// Output:
	// h(a,b=2,v@40%(c))
	// INVALID_EXPRESSION: parse expression: offset 5: duplicate label "a" (first used at offset 2)
}
