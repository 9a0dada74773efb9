// Package ct provides Category Theory primitives for composing numerals and
// rendered output.
package ct

// Monoid defines an algebraic structure with identity and associative append.
type Monoid[A any] struct {
	Empty  func() A
	Append func(A, A) A
}

// Map applies a function to each element of a slice.
func Map[A, B any](xs []A, f func(A) B) []B {
	result := make([]B, len(xs))
	for i, x := range xs {
		result[i] = f(x)
	}
	return result
}

// Concat combines a slice of values using the monoid.
func Concat[A any](m Monoid[A], xs []A) A {
	result := m.Empty()
	for _, x := range xs {
		result = m.Append(result, x)
	}
	return result
}

// FoldMap maps and then folds in one pass.
func FoldMap[A, B any](xs []A, m Monoid[B], f func(A) B) B {
	result := m.Empty()
	for _, x := range xs {
		result = m.Append(result, f(x))
	}
	return result
}

