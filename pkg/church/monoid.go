package church

import "github.com/vinodhalaharvi/church/pkg/ct"

// Sum is the additive monoid of numerals.
func Sum[T any]() ct.Monoid[Numeral[T]] {
	return ct.Monoid[Numeral[T]]{
		Empty:  Zero[T],
		Append: Add[T],
	}
}

// Product is the multiplicative monoid of numerals.
func Product[T any]() ct.Monoid[Numeral[T]] {
	return ct.Monoid[Numeral[T]]{
		Empty:  One[T],
		Append: Mult[T],
	}
}

// Endos is the monoid of endofunctions under composition. Append(f, g)
// runs f first.
func Endos[T any]() ct.Monoid[Endo[T]] {
	return ct.Monoid[Endo[T]]{
		Empty: func() Endo[T] { return func(x T) T { return x } },
		Append: func(f, g Endo[T]) Endo[T] {
			return func(x T) T { return g(f(x)) }
		},
	}
}

// Total adds up ns. An empty list is Zero.
func Total[T any](ns ...Numeral[T]) Numeral[T] {
	return ct.Concat(Sum[T](), ns)
}
