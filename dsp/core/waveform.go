package core

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by Waveform validation.
var (
	ErrInvalidSampleRate = errors.New("core: sample rate must be > 0")
	ErrNonFinite         = errors.New("core: non-finite sample")
)

// Waveform is a mono block of time-domain samples and its sample rate in Hz.
//
// Processing stages treat a Waveform as an immutable value: they read
// Samples and return a new Waveform that owns a fresh slice.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// NewWaveform returns a Waveform holding a copy of samples.
func NewWaveform(samples []float64, sampleRate int) Waveform {
	out := make([]float64, len(samples))
	copy(out, samples)

	return Waveform{Samples: out, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (w Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the playback length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy of w.
func (w Waveform) Clone() Waveform {
	return NewWaveform(w.Samples, w.SampleRate)
}

// WithSamples returns a Waveform at the same sample rate that owns samples.
func (w Waveform) WithSamples(samples []float64) Waveform {
	return Waveform{Samples: samples, SampleRate: w.SampleRate}
}

// Peak returns the largest absolute sample value.
func (w Waveform) Peak() float64 {
	return PeakAbs(w.Samples)
}

// Validate checks that the sample rate is positive and every sample is finite.
// An empty waveform is valid.
func (w Waveform) Validate() error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, w.SampleRate)
	}

	if i := FirstNonFinite(w.Samples); i >= 0 {
		return fmt.Errorf("%w at index %d: %v", ErrNonFinite, i, w.Samples[i])
	}

	return nil
}
