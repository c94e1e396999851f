// Package grammar defines the declarative grammar of calculator source and
// parses text into a parse tree shaped by that grammar. The parse tree keeps
// the spans of every matched rule; package calco lowers it to expression
// trees.
//
// The grammar is
//
//	Program    = Expr* .
//	Expr       = UnaryExpr | BinaryExpr .
//	UnaryExpr  = ("+" | "-") Term .
//	BinaryExpr = Term (OpTerm+ | Term)? .
//	OpTerm     = ("+" | "-" | "*" | "x" | "/") Term .
//	Term       = Number | <ident> | "(" Expr ")" .
//	Number     = "-"? <number> .
//
// A BinaryExpr with no tail is a lone term, and one followed by a bare second
// term is an implicit multiplication.
package grammar

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the root of a parse tree: every expression in the source, in
// order.
type Program struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Exprs []*Expr `@@*`
}

// Expr is a single top-level or parenthesized expression. Exactly one field
// is set.
type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Unary  *UnaryExpr  `  @@`
	Binary *BinaryExpr `| @@`
}

// UnaryExpr is a sign applied to a term.
type UnaryExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Sign string `@("+" | "-")`
	Term *Term  `@@`
}

// BinaryExpr is a term followed by either operator-term pairs, a second term
// with no operator between, or nothing. At most one of Tail and Juxt is set.
type BinaryExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Head *Term     `@@`
	Tail []*OpTerm `( @@+`
	Juxt *Term     `| @@ )?`
}

// OpTerm is an operator and the term to its right.
type OpTerm struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Op   string `@("+" | "-" | "*" | "x" | "/")`
	Term *Term  `@@`
}

// Term is an operand. Exactly one field is set.
type Term struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Number *Number `  @@`
	Var    *string `| @Ident`
	Group  *Expr   `| "(" @@ ")"`
}

// Number is a numeric literal with its optional sign.
type Number struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Neg    bool   `@"-"?`
	Digits string `@Number`
}

// parser is safe for concurrent use; each parse has its own state.
var parser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	// Enough to back out of an operator with no term after it, as in "2 x",
	// into the implicit multiplication alternative.
	participle.UseLookahead(2),
)

// Parse parses the entirety of src. On failure, the result is nil and the
// error is a participle error carrying the position where matching stopped.
// filename is used only in positions and may be empty.
func Parse(filename, src string) (*Program, error) {
	return parser.ParseString(filename, src)
}

// ParseReader parses all text read from r.
func ParseReader(filename string, r io.Reader) (*Program, error) {
	return parser.Parse(filename, r)
}

// EBNF returns the grammar in EBNF form.
func EBNF() string {
	return parser.String()
}
