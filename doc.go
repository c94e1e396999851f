// Package calco implements a small floating-point calculator.
//
// Source text holds any number of expressions made of numbers, the constant
// pi, the operators + - * / (x also multiplies), signs, and parentheses.
// Operators have no precedence; a chain is evaluated left to right, so
// "2+3*4" is 20. Two terms next to each other multiply: "2(3+4)" is 14 and
// "3pi" is three times pi. Names other than pi are zero.
//
// When a source holds several expressions, as in "2+3 4", the result is
// their sum.
package calco
