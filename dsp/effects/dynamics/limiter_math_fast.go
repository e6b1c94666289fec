//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// tanhSaturation is the argument beyond which tanh rounds to ±1 in float64.
const tanhSaturation = 20.0

// mathTanh computes tanh(x) = 1 - 2/(e^(2x)+1) with a fast exp approximation.
func mathTanh(x float64) float64 {
	mag := math.Abs(x)
	if mag >= tanhSaturation {
		return math.Copysign(1, x)
	}

	t := 1 - 2/(approx.FastExp(2*mag)+1)
	return math.Copysign(t, x)
}
