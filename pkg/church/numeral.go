// Package church implements Church numerals: natural numbers encoded as
// higher-order functions.
//
// A Numeral[T] holds no integer. Given an endofunction f it returns f
// composed with itself n times, and that behavior is the number:
//
//	three := church.Three[int]()
//	inc := func(x int) int { return x + 1 }
//	three(inc)(0) // 3
//
// Numerals are immutable. Every operator returns a new numeral whose closure
// captures its operands, so an operand may be shared by any number of
// results. Decoding back to a machine integer runs the numeral against an
// instrumented f that counts its own calls (see ToUint).
//
// Evaluating FromUint(k) recurses k frames deep. Goroutine stacks grow on
// demand, so values up to at least 10^6 decode on a default runtime.
package church

// Endo is an endofunction over T.
type Endo[T any] func(T) T

// Numeral is a Church numeral over element type T. Applied to f it returns
// f^n, where f^0 is the identity.
type Numeral[T any] func(Endo[T]) Endo[T]

// Zero applies f no times.
func Zero[T any]() Numeral[T] {
	return func(Endo[T]) Endo[T] {
		return func(x T) T { return x }
	}
}

// One applies f once.
func One[T any]() Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		return func(x T) T { return f(x) }
	}
}

// Two applies f twice.
func Two[T any]() Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		return func(x T) T { return f(f(x)) }
	}
}

// Three applies f three times.
func Three[T any]() Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		return func(x T) T { return f(f(f(x))) }
	}
}

// Succ returns n+1: one more application of f after f^n.
func Succ[T any](n Numeral[T]) Numeral[T] {
	return func(f Endo[T]) Endo[T] {
		fn := n(f)
		return func(x T) T { return f(fn(x)) }
	}
}

// FromUint builds the numeral for k by applying Succ to Zero k times.
func FromUint[T any](k uint) Numeral[T] {
	n := Zero[T]()
	for i := uint(0); i < k; i++ {
		n = Succ(n)
	}
	return n
}

// N is shorthand for FromUint, for writing numeral literals.
func N[T any](k uint) Numeral[T] {
	return FromUint[T](k)
}

// Apply runs f on x n times.
func (n Numeral[T]) Apply(f Endo[T], x T) T {
	return n(f)(x)
}

// Succ is the method form of Succ.
func (n Numeral[T]) Succ() Numeral[T] {
	return Succ(n)
}

// Add is the method form of Add.
func (n Numeral[T]) Add(m Numeral[T]) Numeral[T] {
	return Add(n, m)
}

// Mult is the method form of Mult.
func (n Numeral[T]) Mult(m Numeral[T]) Numeral[T] {
	return Mult(n, m)
}

// Uint decodes n. See ToUint.
func (n Numeral[T]) Uint() uint {
	return ToUint(n)
}
