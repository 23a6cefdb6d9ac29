//go:build fastmath

package design

import (
	"github.com/meko-christian/algo-approx"
)

// mathExp computes e^x using fast approximation. Only envelope decay factors
// go through here; resonator poles keep full precision.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
