package calco

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// constants holds the names that evaluate to something other than zero.
var constants = map[string]float64{
	"pi": niladic(bigfloat.Pi),
}

// niladic computes a constant and rounds it to a float64.
func niladic(f func(out *big.Float) *big.Float) float64 {
	r, _ := f(new(big.Float).SetPrec(128)).Float64()
	return r
}

// constant returns the value of a name. Names that are not constants are
// zero; there are no variables.
func constant(name string) float64 {
	return constants[name]
}
