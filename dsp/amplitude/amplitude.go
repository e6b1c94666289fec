// Package amplitude provides whole-buffer level transforms: decibel gain,
// peak normalisation and the final safety clip of the processing chain.
//
// All functions return a new waveform and never modify their input.
package amplitude

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// GainSkipThreshold is the magnitude in dB at or below which a gain stage
// is treated as unity and skipped by the processing chain.
const GainSkipThreshold = 1e-4

// ErrInvalidTargetPeak is returned when the normalisation target is outside (0, 1].
var ErrInvalidTargetPeak = errors.New("amplitude: target peak must be in (0, 1]")

// Gain scales w by 10^(gainDB/20). The result is not clipped.
func Gain(w core.Waveform, gainDB float64) core.Waveform {
	return scale(w, core.DBToLinear(gainDB))
}

// Normalize scales w so that its largest absolute sample equals targetPeak.
// A silent waveform is returned unchanged.
func Normalize(w core.Waveform, targetPeak float64) (core.Waveform, error) {
	if !(targetPeak > 0 && targetPeak <= 1) {
		return core.Waveform{}, fmt.Errorf("%w: %v", ErrInvalidTargetPeak, targetPeak)
	}

	peak := w.Peak()
	if peak == 0 {
		return w.Clone(), nil
	}

	return scale(w, targetPeak/peak), nil
}

// SafetyClip bounds w to [-1, 1]. A waveform whose peak exceeds 1 is first
// divided by its peak, so the loudest sample lands exactly on ±1; the
// remaining samples are then clamped.
func SafetyClip(w core.Waveform) core.Waveform {
	out := w.Clone()

	if peak := w.Peak(); peak > 1 {
		for i := range out.Samples {
			out.Samples[i] /= peak
		}
	}

	for i, v := range out.Samples {
		out.Samples[i] = core.Clamp(v, -1, 1)
	}

	return out
}

func scale(w core.Waveform, factor float64) core.Waveform {
	out := make([]float64, len(w.Samples))
	for i, v := range w.Samples {
		out[i] = v * factor
	}
	return w.WithSamples(out)
}
