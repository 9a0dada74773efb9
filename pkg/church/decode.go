package church

// ToUint decodes n by counting how many times n calls an instrumented
// identity function. The result of the evaluation is discarded; the zero
// value of T only seeds the call.
func ToUint[T any](n Numeral[T]) uint {
	var seed T
	return ToUintFrom(n, seed)
}

// ToUintFrom is ToUint with a caller-supplied seed. Any seed yields the same
// count.
func ToUintFrom[T any](n Numeral[T], seed T) uint {
	var count uint
	tick := func(x T) T {
		count++
		return x
	}
	_ = n(tick)(seed)
	return count
}
