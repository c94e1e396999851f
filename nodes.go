package calco

import (
	"strconv"
	"strings"
)

// Operator is an arithmetic operator.
type Operator int8

const (
	opNone Operator = iota

	Plus
	Minus
	Multiplication
	Division
)

func (op Operator) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiplication:
		return "*"
	case Division:
		return "/"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// Node is a node in the abstract syntax tree of an expression. The
// implementations are Number, UnaryExpr, and BinaryExpr. Trees are values;
// nothing in this package modifies a tree once it is built.
type Node interface {
	// String formats the tree with operators between operands and no
	// grouping, e.g. "2 + 3" or "-5".
	String() string

	node()
}

// Number is a leaf holding a literal or a resolved constant.
type Number float64

// UnaryExpr is a leading sign applied to a single operand.
type UnaryExpr struct {
	Op    Operator
	Child Node
}

// BinaryExpr combines two operands.
type BinaryExpr struct {
	Op  Operator
	LHS Node
	RHS Node
}

func (Number) node()     {}
func (UnaryExpr) node()  {}
func (BinaryExpr) node() {}

func (n Number) String() string {
	return FormatNumber(float64(n))
}

func (n UnaryExpr) String() string {
	var b strings.Builder
	fmtnode(&b, n)
	return b.String()
}

func (n BinaryExpr) String() string {
	var b strings.Builder
	fmtnode(&b, n)
	return b.String()
}

func fmtnode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case Number:
		b.WriteString(FormatNumber(float64(n)))
	case UnaryExpr:
		b.WriteString(n.Op.String())
		fmtnode(b, n.Child)
	case BinaryExpr:
		fmtnode(b, n.LHS)
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		fmtnode(b, n.RHS)
	case nil:
		// Invalid nodes use invalid characters.
		b.WriteString("$nil$")
	default:
		panic("calco: invalid node type after writing " + b.String())
	}
}

// FormatNumber formats x in the shortest decimal form that reads back as x,
// without an exponent: 5 is "5", 0.25 is "0.25".
func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Program is the sequence of expressions found in one source text, in order.
type Program struct {
	Exprs []Node
}

// String formats each expression on its own line.
func (p *Program) String() string {
	var b strings.Builder
	for i, n := range p.Exprs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmtnode(&b, n)
	}
	return b.String()
}
