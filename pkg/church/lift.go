package church

// Lift re-types a dynamically typed numeral at T.
//
// Numerals built from runtime data are kept at Numeral[any], because Go
// cannot instantiate a generic function at T and, recursively, at Endo[T].
// Lift boxes f through any, so Lift[Endo[any]](m) is a valid exponent for
// Exp. The returned numeral applies f exactly as many times as n does.
func Lift[T any](n Numeral[any]) Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		boxed := n(func(x any) any {
			v, _ := x.(T) // a nil interface seed unboxes to the zero T
			return f(v)
		})
		return func(x T) T {
			v, _ := boxed(x).(T)
			return v
		}
	}
}
