package fir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// ErrInvalidKernelSize is returned for a smoothing kernel size below 1.
var ErrInvalidKernelSize = errors.New("fir: kernel size must be >= 1")

// MovingAverage returns a uniform kernel of k taps, each 1/k.
// It returns nil for k < 1.
func MovingAverage(k int) []float64 {
	if k < 1 {
		return nil
	}

	kernel := make([]float64, k)
	for i := range kernel {
		kernel[i] = 1 / float64(k)
	}
	return kernel
}

// Smooth applies a centred k-tap moving average to w.
//
// The output has the same length as the input. Near the edges the kernel
// overlaps implicit zeros, matching "same" convolution. k == 1 returns an
// unchanged copy.
func Smooth(w core.Waveform, k int) (core.Waveform, error) {
	if k < 1 {
		return core.Waveform{}, fmt.Errorf("%w: %d", ErrInvalidKernelSize, k)
	}

	if k == 1 || w.Len() == 0 {
		return w.Clone(), nil
	}

	out, err := conv.ConvolveMode(w.Samples, MovingAverage(k), conv.ModeSame)
	if err != nil {
		return core.Waveform{}, fmt.Errorf("fir: smoothing: %w", err)
	}

	return w.WithSamples(out), nil
}
