package calco

import (
	"io"
	"strconv"
)

// EvalErrorKind classifies an evaluation failure. Each kind is itself an
// error, so errors.Is(err, DivisionByZero) reports whether err is or wraps a
// division by zero.
type EvalErrorKind int8

const (
	_ EvalErrorKind = iota

	// MultiplicationSyntax is a multiplication with no left operand.
	MultiplicationSyntax
	// DivisionSyntax is a division with no left operand.
	DivisionSyntax
	// DivisionByZero is a division whose right operand evaluated to zero.
	DivisionByZero
)

func (k EvalErrorKind) Error() string {
	switch k {
	case MultiplicationSyntax:
		return "multiplication with no left operand"
	case DivisionSyntax:
		return "division with no left operand"
	case DivisionByZero:
		return "division by zero"
	default:
		return "evaluation error " + strconv.Itoa(int(k))
	}
}

func (k EvalErrorKind) String() string {
	switch k {
	case MultiplicationSyntax:
		return "MultiplicationSyntax"
	case DivisionSyntax:
		return "DivisionSyntax"
	case DivisionByZero:
		return "DivisionByZero"
	default:
		return "EvalErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// EvalError is an error from evaluating an expression tree.
type EvalError struct {
	Kind EvalErrorKind
	// Expr is the subexpression that could not be evaluated.
	Expr Node
}

func (err *EvalError) Error() string {
	return err.Kind.Error() + " in " + strconv.Quote(err.Expr.String())
}

// Unwrap returns the error kind.
func (err *EvalError) Unwrap() error {
	return err.Kind
}

// Eval evaluates an expression tree. Operands are evaluated left to right, and
// evaluation stops at the first error, which is an *EvalError.
func Eval(n Node) (float64, error) {
	switch n := n.(type) {
	case Number:
		return float64(n), nil
	case UnaryExpr:
		x, err := Eval(n.Child)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case Plus:
			return x, nil
		case Minus:
			return -x, nil
		case Multiplication:
			return 0, &EvalError{Kind: MultiplicationSyntax, Expr: n}
		case Division:
			return 0, &EvalError{Kind: DivisionSyntax, Expr: n}
		default:
			panic("calco: invalid unary operator " + n.Op.String())
		}
	case BinaryExpr:
		l, err := Eval(n.LHS)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.RHS)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case Plus:
			return l + r, nil
		case Minus:
			return l - r, nil
		case Multiplication:
			return l * r, nil
		case Division:
			if r == 0 {
				return 0, &EvalError{Kind: DivisionByZero, Expr: n}
			}
			return l / r, nil
		default:
			panic("calco: invalid binary operator " + n.Op.String())
		}
	default:
		panic("calco: invalid AST node")
	}
}

// Eval evaluates each expression in the program in order and returns the sum
// of their values. Evaluation stops at the first error.
func (p *Program) Eval() (float64, error) {
	var r float64
	for _, n := range p.Exprs {
		x, err := Eval(n)
		if err != nil {
			return 0, err
		}
		r += x
	}
	return r, nil
}

// EvalReader is a shortcut to parse all text from src and evaluate it.
func EvalReader(src io.Reader, opts ...ParseOption) (float64, error) {
	p, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return p.Eval()
}

// EvalString is a shortcut to parse and evaluate a string.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	p, err := ParseString(src, opts...)
	if err != nil {
		return 0, err
	}
	return p.Eval()
}
