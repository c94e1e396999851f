package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/zephyrtronium/calco"
)

func success(w io.Writer, r float64) {
	fmt.Fprintln(w, calco.FormatNumber(r))
}

// message gives the sentence shown for an error.
func message(err error) string {
	var k calco.EvalErrorKind
	if errors.As(err, &k) {
		switch k {
		case calco.MultiplicationSyntax:
			return "Cannot multiplicate a number without another number"
		case calco.DivisionSyntax:
			return "Cannot divide a number without another number"
		case calco.DivisionByZero:
			return "Cannot divide a number by zero"
		}
	}
	return err.Error()
}

func printError(w io.Writer, color bool, msg string) {
	if color {
		fmt.Fprintf(w, "\x1b[31mERROR!\x1b[0m %s\n", msg)
		return
	}
	fmt.Fprintf(w, "ERROR! %s\n", msg)
}
