package church

// Add returns n+m: f^n followed by f^m. Both operands are applied to f
// itself, never to each other's result.
func Add[T any](n, m Numeral[T]) Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		fn := n(f)
		fm := m(f)
		return func(x T) T { return fm(fn(x)) }
	}
}

// Mult returns n*m: "apply f n times", applied m times.
func Mult[T any](n, m Numeral[T]) Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		return m(n(f))
	}
}

// Exp returns n^m.
//
// The exponent lives one level up, over endofunctions of T. Read as a
// function, n maps f to f^n, which makes it an Endo[Endo[T]]; m applies that
// map m times, giving the map f to f^(n^m), which is then applied to f.
func Exp[T any](n Numeral[T], m Numeral[Endo[T]]) Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		return m(Endo[Endo[T]](n))(f)
	}
}
