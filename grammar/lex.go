package grammar

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Operators contains the runes which are considered to be operators. The
// identifier x is also a multiplication operator where an operator can appear.
const Operators = "+-*/"

// Lexer defines the tokens of calculator source. Whitespace is insignificant
// and elided by the parser.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	// Numbers are unsigned. A leading minus is a separate token so that
	// "2-3" scans as a subtraction rather than two adjacent terms.
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	// Identifiers are letters only, so "2x3" is 2, x, 3.
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Op", Pattern: `[-+*/]`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Token is a token scanned from source text.
type Token struct {
	// Kind is the name of the lexer rule that matched the token.
	Kind string
	Text string
	// Line and Col give the position of the start of the token, starting
	// from 1. Col counts runes.
	Line int
	Col  int
}

func (t Token) String() string {
	return t.Kind + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// Tokenize scans src into tokens, omitting whitespace. If the source contains
// text that is not a token, Tokenize returns the tokens scanned up to that
// point along with a participle error describing the position.
func Tokenize(filename, src string) ([]Token, error) {
	lx, err := Lexer.LexString(filename, src)
	if err != nil {
		return nil, err
	}
	names := lexer.SymbolsByRune(Lexer)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return toks, err
		}
		if tok.EOF() {
			return toks, nil
		}
		kind := names[tok.Type]
		if kind == "Whitespace" {
			continue
		}
		toks = append(toks, Token{
			Kind: kind,
			Text: tok.Value,
			Line: tok.Pos.Line,
			Col:  tok.Pos.Column,
		})
	}
}
