// Package transformer compiles parsed expressions into Church numerals.
package transformer

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/vinodhalaharvi/church/pkg/church"
	"github.com/vinodhalaharvi/church/pkg/parser"
)

var (
	// ErrLiteralTooLarge reports an integer literal above Options.MaxLiteral.
	ErrLiteralTooLarge = errors.New("literal too large")
	// ErrValueTooLarge reports an expression whose value exceeds Options.MaxValue.
	ErrValueTooLarge = errors.New("value too large")
)

// Options configures the transformation.
type Options struct {
	// MaxLiteral bounds integer literals. FromUint(k) nests k closures, so
	// this also bounds evaluation depth.
	MaxLiteral uint64
	// MaxValue bounds the value of the whole expression. Decoding n costs n
	// calls, so exp(10, 20) is refused here rather than counted.
	MaxValue uint64
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		MaxLiteral: 1 << 16,
		MaxValue:   1 << 24,
	}
}

// Transformer converts expression trees to numerals.
type Transformer struct {
	opts Options
}

// NewTransformer creates a new transformer.
func NewTransformer(opts Options) *Transformer {
	return &Transformer{opts: opts}
}

// Options returns the transformer's options.
func (t *Transformer) Options() Options { return t.opts }

// Transform checks e against the configured limits and compiles it.
//
// The numeral is built at element type any; exponents are lifted to
// Endo[any] so that Exp receives them at the level it requires.
func (t *Transformer) Transform(e parser.Expr) (church.Numeral[any], error) {
	v, err := t.Bound(e)
	if err != nil {
		return nil, err
	}
	if v > t.opts.MaxValue {
		return nil, fmt.Errorf("%w: %s is %d, limit %d", ErrValueTooLarge, e, v, t.opts.MaxValue)
	}
	return t.compile(e), nil
}

func (t *Transformer) compile(e parser.Expr) church.Numeral[any] {
	switch n := e.(type) {
	case parser.Literal:
		return church.FromUint[any](uint(n.Value))
	case parser.Call:
		switch n.Op {
		case parser.OpZero:
			return church.Zero[any]()
		case parser.OpOne:
			return church.One[any]()
		case parser.OpTwo:
			return church.Two[any]()
		case parser.OpThree:
			return church.Three[any]()
		case parser.OpSucc:
			return church.Succ(t.compile(n.Args[0]))
		case parser.OpAdd:
			return church.Add(t.compile(n.Args[0]), t.compile(n.Args[1]))
		case parser.OpMult:
			return church.Mult(t.compile(n.Args[0]), t.compile(n.Args[1]))
		case parser.OpExp:
			exponent := church.Lift[church.Endo[any]](t.compile(n.Args[1]))
			return church.Exp(t.compile(n.Args[0]), exponent)
		}
	}
	panic(fmt.Sprintf("transformer: unexpected node %T", e))
}

// Bound computes the value e denotes with overflow-checked machine
// arithmetic, without building any numeral. It fails when a literal
// exceeds MaxLiteral or an intermediate result exceeds MaxValue.
func (t *Transformer) Bound(e parser.Expr) (uint64, error) {
	switch n := e.(type) {
	case parser.Literal:
		if n.Value > t.opts.MaxLiteral {
			return 0, fmt.Errorf("%w: %d, limit %d", ErrLiteralTooLarge, n.Value, t.opts.MaxLiteral)
		}
		return n.Value, nil
	case parser.Call:
		args := make([]uint64, len(n.Args))
		for i, a := range n.Args {
			v, err := t.Bound(a)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		v, ok := apply(n.Op, args)
		if !ok || v > t.opts.MaxValue {
			return 0, fmt.Errorf("%w: %s exceeds limit %d", ErrValueTooLarge, n, t.opts.MaxValue)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("transformer: unexpected node %T", e)
	}
}

// apply evaluates op on machine integers; ok is false on overflow.
func apply(op parser.Op, args []uint64) (v uint64, ok bool) {
	switch op {
	case parser.OpZero:
		return 0, true
	case parser.OpOne:
		return 1, true
	case parser.OpTwo:
		return 2, true
	case parser.OpThree:
		return 3, true
	case parser.OpSucc:
		v, carry := bits.Add64(args[0], 1, 0)
		return v, carry == 0
	case parser.OpAdd:
		v, carry := bits.Add64(args[0], args[1], 0)
		return v, carry == 0
	case parser.OpMult:
		hi, lo := bits.Mul64(args[0], args[1])
		return lo, hi == 0
	case parser.OpExp:
		return pow(args[0], args[1])
	}
	return 0, false
}

// pow is exponentiation by squaring with overflow detection. pow(0, 0) is 1,
// matching the numeral encoding.
func pow(base, exp uint64) (uint64, bool) {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			hi, lo := bits.Mul64(result, base)
			if hi != 0 {
				return 0, false
			}
			result = lo
		}
		exp >>= 1
		if exp > 0 {
			hi, lo := bits.Mul64(base, base)
			if hi != 0 {
				return 0, false
			}
			base = lo
		}
	}
	return result, true
}
