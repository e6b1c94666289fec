package dynamics

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Hardness is the slope of the saturation curve above the threshold.
const Hardness = 3.0

// ErrInvalidThreshold is returned when the limiter threshold is outside (0, 1).
var ErrInvalidThreshold = errors.New("dynamics: threshold must be in (0, 1)")

// SoftLimit applies a tanh soft limiter to w.
//
// For |x| <= threshold the sample is passed through unchanged. Above it the
// output is
//
//	sign(x) * threshold * (1 + tanh(Hardness * (|x| - threshold)))
//
// followed by a clamp to [-1, 1].
func SoftLimit(w core.Waveform, threshold float64) (core.Waveform, error) {
	if !(threshold > 0 && threshold < 1) {
		return core.Waveform{}, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	out := make([]float64, len(w.Samples))
	for i, x := range w.Samples {
		out[i] = softLimitSample(x, threshold)
	}

	return w.WithSamples(out), nil
}

func softLimitSample(x, threshold float64) float64 {
	mag := math.Abs(x)
	if mag <= threshold {
		return x
	}

	y := threshold * (1 + mathTanh(Hardness*(mag-threshold)))
	return core.Clamp(math.Copysign(y, x), -1, 1)
}
