package church_test

import (
	"fmt"

	"github.com/vinodhalaharvi/church/pkg/church"
)

func ExampleToUint() {
	n := church.Add(church.One[struct{}](), church.Two[struct{}]())
	fmt.Println(church.ToUint(n))
	// Output: 3
}

func ExampleExp() {
	base := church.FromUint[struct{}](3)
	exponent := church.FromUint[church.Endo[struct{}]](5)
	fmt.Println(church.ToUint(church.Exp(base, exponent)))
	// Output: 243
}

func ExampleNumeral_Apply() {
	three := church.Three[string]()
	fmt.Println(three.Apply(func(s string) string { return "f(" + s + ")" }, "x"))
	// Output: f(f(f(x)))
}
