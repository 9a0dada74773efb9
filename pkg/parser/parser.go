// Package parser reads numeral expressions such as "exp(3, 5)" or
// "2 * (one + 2)" into an expression tree.
//
// Expressions use Go syntax and are parsed with go/parser. Binary operators
// keep Go precedence, so ^ (exponentiation here) binds like +.
package parser

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
)

var (
	// ErrSyntax reports input that is not a Go expression.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownOperator reports a name or function that is not a numeral operator.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrArity reports an operator called with the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrNegative reports a negated operand; numerals are natural numbers.
	ErrNegative = errors.New("negative numerals are not representable")
	// ErrUnsupported reports Go syntax with no numeral meaning.
	ErrUnsupported = errors.New("unsupported expression")
)

// Op names a numeral operator.
type Op string

// Operators.
const (
	OpZero  Op = "zero"
	OpOne   Op = "one"
	OpTwo   Op = "two"
	OpThree Op = "three"
	OpSucc  Op = "succ"
	OpAdd   Op = "add"
	OpMult  Op = "mult"
	OpExp   Op = "exp"
)

// Arity returns the number of operands op takes.
func (op Op) Arity() int {
	switch op {
	case OpSucc:
		return 1
	case OpAdd, OpMult, OpExp:
		return 2
	default:
		return 0
	}
}

var operators = map[string]Op{
	"zero": OpZero, "one": OpOne, "two": OpTwo, "three": OpThree,
	"succ": OpSucc, "add": OpAdd, "mult": OpMult, "exp": OpExp,
}

// builderName is the literal builder: church(5) is the literal 5.
const builderName = "church"

// Expr is a node of the expression tree.
type Expr interface {
	expr()
	String() string
}

// Expression nodes.
type (
	// Literal is an integer literal.
	Literal struct{ Value uint64 }
	// Call applies an operator; named numerals are calls with no arguments.
	Call struct {
		Op   Op
		Args []Expr
	}
)

func (Literal) expr() {}
func (Call) expr()    {}

func (l Literal) String() string { return strconv.FormatUint(l.Value, 10) }
func (c Call) String() string {
	if len(c.Args) == 0 {
		return string(c.Op)
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return string(c.Op) + "(" + strings.Join(args, ", ") + ")"
}

// Parser turns source text into expression trees. It is safe for
// concurrent use.
type Parser struct {
	fset *token.FileSet
}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{fset: token.NewFileSet()}
}

// Parse parses a single expression.
func (p *Parser) Parse(src string) (Expr, error) {
	node, err := goparser.ParseExprFrom(p.fset, "expr", src, goparser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return p.convert(unparen(node))
}

// unparen drops every ParenExpr; grouping is already encoded in the tree.
func unparen(e ast.Expr) ast.Expr {
	out := astutil.Apply(e, nil, func(c *astutil.Cursor) bool {
		if paren, ok := c.Node().(*ast.ParenExpr); ok {
			c.Replace(paren.X)
		}
		return true
	})
	return out.(ast.Expr)
}

func (p *Parser) convert(e ast.Expr) (Expr, error) {
	switch n := e.(type) {
	case *ast.BasicLit:
		return p.literal(n)
	case *ast.Ident:
		op, err := p.operator(n)
		if err != nil {
			return nil, err
		}
		if op.Arity() != 0 {
			return nil, p.errorf(n, ErrArity, "%s takes %d argument(s)", op, op.Arity())
		}
		return Call{Op: op}, nil
	case *ast.CallExpr:
		return p.call(n)
	case *ast.BinaryExpr:
		return p.binary(n)
	case *ast.UnaryExpr:
		switch n.Op {
		case token.ADD:
			return p.convert(n.X)
		case token.SUB:
			return nil, p.errorf(n, ErrNegative, "-%s", describe(n.X))
		}
		return nil, p.errorf(n, ErrUnsupported, "unary %s", n.Op)
	default:
		return nil, p.errorf(e, ErrUnsupported, "%T", e)
	}
}

func (p *Parser) literal(lit *ast.BasicLit) (Expr, error) {
	if lit.Kind != token.INT {
		return nil, p.errorf(lit, ErrUnsupported, "%s literal %s", strings.ToLower(lit.Kind.String()), lit.Value)
	}
	v, err := strconv.ParseUint(lit.Value, 0, 64)
	if err != nil {
		return nil, p.errorf(lit, ErrUnsupported, "literal %s: %v", lit.Value, err)
	}
	return Literal{Value: v}, nil
}

func (p *Parser) operator(id *ast.Ident) (Op, error) {
	op, ok := operators[id.Name]
	if !ok {
		return "", p.errorf(id, ErrUnknownOperator, "%q", id.Name)
	}
	return op, nil
}

func (p *Parser) call(c *ast.CallExpr) (Expr, error) {
	id, ok := c.Fun.(*ast.Ident)
	if !ok {
		return nil, p.errorf(c.Fun, ErrUnsupported, "callee %T", c.Fun)
	}
	if c.Ellipsis.IsValid() {
		return nil, p.errorf(c, ErrUnsupported, "variadic call")
	}

	if id.Name == builderName {
		if len(c.Args) != 1 {
			return nil, p.errorf(c, ErrArity, "%s takes 1 argument(s), got %d", builderName, len(c.Args))
		}
		lit, ok := c.Args[0].(*ast.BasicLit)
		if !ok {
			return nil, p.errorf(c.Args[0], ErrUnsupported, "%s needs an integer literal", builderName)
		}
		return p.literal(lit)
	}

	op, err := p.operator(id)
	if err != nil {
		return nil, err
	}
	if len(c.Args) != op.Arity() {
		return nil, p.errorf(c, ErrArity, "%s takes %d argument(s), got %d", op, op.Arity(), len(c.Args))
	}

	var args []Expr
	for _, a := range c.Args {
		arg, err := p.convert(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return Call{Op: op, Args: args}, nil
}

var binaryOps = map[token.Token]Op{
	token.ADD: OpAdd,
	token.MUL: OpMult,
	token.XOR: OpExp,
}

func (p *Parser) binary(b *ast.BinaryExpr) (Expr, error) {
	op, ok := binaryOps[b.Op]
	if !ok {
		return nil, p.errorf(b, ErrUnsupported, "operator %s", b.Op)
	}
	x, err := p.convert(b.X)
	if err != nil {
		return nil, err
	}
	y, err := p.convert(b.Y)
	if err != nil {
		return nil, err
	}
	return Call{Op: op, Args: []Expr{x, y}}, nil
}

func (p *Parser) errorf(n ast.Node, kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", p.fset.Position(n.Pos()), kind, fmt.Sprintf(format, args...))
}

// describe names a node for error messages.
func describe(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.BasicLit:
		return n.Value
	case *ast.Ident:
		return n.Name
	default:
		return "expression"
	}
}
