// Package generator renders numerals and evaluation reports as text.
package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vinodhalaharvi/church/pkg/church"
	"github.com/vinodhalaharvi/church/pkg/ct"
	"github.com/vinodhalaharvi/church/pkg/parser"
)

var (
	// ErrUnknownFormat reports an unsupported output format.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrTermTooLarge reports a numeral too large to spell out.
	ErrTermTooLarge = errors.New("term too large to render")
)

// Format selects how a numeral is written.
type Format string

// Formats.
const (
	FormatDecimal Format = "decimal"
	FormatTally   Format = "tally"
	FormatLambda  Format = "lambda"
)

// MaxTerm is the largest numeral rendered in tally or lambda form.
const MaxTerm = 4096

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDecimal, FormatTally, FormatLambda:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Code represents generated text.
type Code struct {
	Lines []string
}

// CodeMonoid composes code blocks.
var CodeMonoid = ct.Monoid[Code]{
	Empty:  func() Code { return Code{} },
	Append: func(a, b Code) Code { return Code{Lines: append(a.Lines, b.Lines...)} },
}

// Line creates a single line.
func Line(s string) Code { return Code{Lines: []string{s}} }

// Indent adds indentation.
func Indent(c Code) Code {
	indented := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		if line != "" {
			indented[i] = "  " + line
		}
	}
	return Code{Lines: indented}
}

// String converts Code to string.
func (c Code) String() string { return strings.Join(c.Lines, "\n") }

// Generator renders numerals in one format.
type Generator struct {
	format Format
}

// NewGenerator creates a generator for format.
func NewGenerator(format Format) (*Generator, error) {
	f, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &Generator{format: f}, nil
}

// Format returns the generator's format.
func (g *Generator) Format() Format { return g.format }

// Render writes n in the generator's format. Every format decodes n by
// running it against a suitable f; none inspects it any other way.
func (g *Generator) Render(n church.Numeral[any]) (string, error) {
	switch g.format {
	case FormatTally:
		return Tally(n)
	case FormatLambda:
		return Lambda(n)
	default:
		return Decimal(n), nil
	}
}

// Decimal writes n in base ten.
func Decimal(n church.Numeral[any]) string {
	return strconv.FormatUint(uint64(church.ToUint(n)), 10)
}

// Tally writes n as a run of '|'. Zero is the empty string.
func Tally(n church.Numeral[any]) (string, error) {
	if err := checkTerm(n); err != nil {
		return "", err
	}
	var b strings.Builder
	church.Lift[*strings.Builder](n).Apply(func(w *strings.Builder) *strings.Builder {
		w.WriteByte('|')
		return w
	}, &b)
	return b.String(), nil
}

// Lambda writes n as a lambda term, e.g. λf.λx.f (f x) for two.
func Lambda(n church.Numeral[any]) (string, error) {
	if err := checkTerm(n); err != nil {
		return "", err
	}
	body := church.Lift[string](n).Apply(func(s string) string {
		if s == "x" {
			return "f x"
		}
		return "f (" + s + ")"
	}, "x")
	return "λf.λx." + body, nil
}

func checkTerm(n church.Numeral[any]) error {
	if v := church.ToUint(n); v > MaxTerm {
		return fmt.Errorf("%w: %d, limit %d", ErrTermTooLarge, v, MaxTerm)
	}
	return nil
}

// Entry is one item of a report.
type Entry struct {
	Source string
	Output string
	Err    error
	Detail Code // printed indented below the entry, if non-empty
}

// Report renders entries, one per line: "source = output" on success and
// "source: error: msg" on failure.
func Report(entries []Entry) string {
	return ct.FoldMap(entries, CodeMonoid, renderEntry).String()
}

func renderEntry(e Entry) Code {
	head := Line(fmt.Sprintf("%s = %s", e.Source, e.Output))
	if e.Err != nil {
		head = Line(fmt.Sprintf("%s: error: %v", e.Source, e.Err))
	}
	return CodeMonoid.Append(head, Indent(e.Detail))
}

// Tree renders an expression tree, one node per line, operands indented
// below their operator.
func Tree(e parser.Expr) Code {
	call, ok := e.(parser.Call)
	if !ok || len(call.Args) == 0 {
		return Line(e.String())
	}
	return ct.Concat(CodeMonoid, []Code{
		Line(string(call.Op)),
		Indent(ct.FoldMap(call.Args, CodeMonoid, Tree)),
	})
}
