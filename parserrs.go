package calco

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
)

// SyntaxError is an error indicating that the source does not match the
// grammar. It implements InputError.
type SyntaxError struct {
	// Filename is the name of the source, if one was given.
	Filename string
	// Line and Col are the position where matching stopped, starting from 1.
	// Col counts runes.
	Line, Col int
	// Offset is the byte offset of the position.
	Offset int
	// Unexpected is the token at which matching stopped. It is empty at the
	// end of input and when the text is not a token at all.
	Unexpected string
	// Expected describes the tokens the grammar could have accepted, when
	// known.
	Expected string
	// Msg describes the failure without the position.
	Msg string

	pos int
	err error
}

func (err *SyntaxError) Error() string {
	return errpos(err.Filename, err.Line, err.Col, err.Msg)
}

// Pos returns the position of the error in runes from the start of the
// source, counting from 1. On the first line it equals Col.
func (err *SyntaxError) Pos() int {
	return err.pos
}

// Unwrap returns the underlying participle error.
func (err *SyntaxError) Unwrap() error {
	return err.err
}

// syntaxError converts a participle error into a *SyntaxError. src is the
// text the caller gave; shift is the number of bytes the parser saw before it.
// Other errors are returned unchanged.
func syntaxError(err error, src string, shift int) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return err
	}
	pos := perr.Position()
	serr := SyntaxError{
		Filename: pos.Filename,
		Line:     pos.Line,
		Col:      pos.Column,
		Offset:   pos.Offset,
		Msg:      perr.Message(),
		err:      err,
	}
	if shift > 0 {
		serr.Offset = max(serr.Offset-shift, 0)
		if serr.Line <= 1 {
			serr.Col = max(serr.Col-shift, 1)
		}
	}
	serr.pos = utf8.RuneCountInString(src[:min(serr.Offset, len(src))]) + 1
	var uerr *participle.UnexpectedTokenError
	if errors.As(err, &uerr) {
		if !uerr.Unexpected.EOF() {
			serr.Unexpected = uerr.Unexpected.Value
		}
		serr.Expected = expected(uerr.Message())
	}
	return &serr
}

// expected extracts the expected set from a participle message of the form
// `unexpected token "x" (expected ...)`. The parser only renders the set into
// the message.
func expected(msg string) string {
	const mark = " (expected "
	i := strings.LastIndex(msg, mark)
	if i < 0 || !strings.HasSuffix(msg, ")") {
		return ""
	}
	return msg[i+len(mark) : len(msg)-1]
}

// errpos is a shortcut to create an error message with a position. Sources
// with no name on their first line give only the column.
func errpos(filename string, line, col int, msg string) string {
	switch {
	case filename == "" && line <= 1:
		return strconv.Itoa(col) + ": " + msg
	case filename == "":
		return strconv.Itoa(line) + ":" + strconv.Itoa(col) + ": " + msg
	default:
		return filename + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col) + ": " + msg
	}
}

// InputError is an error with position information. Every error resulting from
// source that does not parse implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)
