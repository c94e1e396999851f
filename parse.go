package calco

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calco/grammar"
)

// Parse parses all text read from src into a Program. The given options are
// applied in order. Errors from src are returned as is; a source that does
// not match the grammar gives a *SyntaxError and no Program.
func Parse(src io.Reader, opts ...ParseOption) (*Program, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return ParseString(string(b), opts...)
}

// ParseString parses a string into a Program.
func ParseString(src string, opts ...ParseOption) (*Program, error) {
	g, err := ParseTree(src, opts...)
	if err != nil {
		return nil, err
	}
	return Lower(g), nil
}

// ParseTree parses a string into its parse tree without lowering it.
func ParseTree(src string, opts ...ParseOption) (*grammar.Program, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	text, shift := src, 0
	if p.zerodash && strings.HasPrefix(src, "-") {
		text = "0" + src
		shift = 1
	}
	g, err := grammar.Parse(p.filename, text)
	if err != nil {
		return nil, syntaxError(err, src, shift)
	}
	return g, nil
}

// Lower converts a parse tree into one expression tree per top-level
// expression. Lower panics if the parse tree has a shape that the grammar
// cannot produce.
func Lower(g *grammar.Program) *Program {
	p := Program{Exprs: make([]Node, 0, len(g.Exprs))}
	for _, e := range g.Exprs {
		p.Exprs = append(p.Exprs, lowerexpr(e))
	}
	return &p
}

func lowerexpr(e *grammar.Expr) Node {
	switch {
	case e == nil:
		panic("calco: nil expression")
	case e.Unary != nil:
		u := e.Unary
		return UnaryExpr{Op: unop(u.Sign), Child: lowerterm(u.Term)}
	case e.Binary != nil:
		return lowerbinary(e.Binary)
	default:
		panic("calco: empty expression at " + e.Pos.String())
	}
}

// lowerbinary folds a chain of terms to the left. There is no precedence:
// "2+3*4" is (2+3)*4.
func lowerbinary(b *grammar.BinaryExpr) Node {
	lhs := lowerterm(b.Head)
	if b.Juxt != nil {
		if len(b.Tail) != 0 {
			panic("calco: binary expression with both operators and juxtaposition at " + b.Pos.String())
		}
		// Adjacent terms multiply, e.g. 2(3+4) or 3pi.
		return BinaryExpr{Op: Multiplication, LHS: lhs, RHS: lowerterm(b.Juxt)}
	}
	for _, t := range b.Tail {
		lhs = BinaryExpr{Op: binop(t.Op), LHS: lhs, RHS: lowerterm(t.Term)}
	}
	return lhs
}

func lowerterm(t *grammar.Term) Node {
	switch {
	case t == nil:
		panic("calco: nil term")
	case t.Number != nil:
		return lowernum(t.Number)
	case t.Var != nil:
		return Number(constant(*t.Var))
	case t.Group != nil:
		return lowerexpr(t.Group)
	default:
		panic("calco: empty term at " + t.Pos.String())
	}
}

func lowernum(n *grammar.Number) Node {
	x, err := strconv.ParseFloat(n.Digits, 64)
	// Literals too large for a float64 are infinite.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("calco: invalid number " + strconv.Quote(n.Digits) + " at " + n.Pos.String() + ": " + err.Error())
	}
	if n.Neg {
		x = -x
	}
	return Number(x)
}

// unop converts a sign token.
func unop(s string) Operator {
	switch s {
	case "+":
		return Plus
	case "-":
		return Minus
	default:
		panic("calco: unknown sign " + strconv.Quote(s))
	}
}

// binop converts an operator token.
func binop(s string) Operator {
	switch s {
	case "+":
		return Plus
	case "-":
		return Minus
	case "*", "x":
		return Multiplication
	case "/":
		return Division
	default:
		panic("calco: unknown operator " + strconv.Quote(s))
	}
}
