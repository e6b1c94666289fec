package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Errors returned by the reverb stage.
var (
	ErrEmptyIR            = errors.New("reverb: empty impulse response")
	ErrSampleRateMismatch = errors.New("reverb: impulse response sample rate differs from signal")
)

// ConvolutionReverb convolves waveforms with a fixed impulse response.
// The kernel spectrum is computed once and reused across calls.
//
// A ConvolutionReverb is not safe for concurrent use.
type ConvolutionReverb struct {
	ir     core.Waveform
	engine *conv.OverlapAdd
}

// NewConvolutionReverb prepares a reverb for ir.
func NewConvolutionReverb(ir core.Waveform) (*ConvolutionReverb, error) {
	if ir.Len() == 0 {
		return nil, ErrEmptyIR
	}
	if err := ir.Validate(); err != nil {
		return nil, fmt.Errorf("reverb: impulse response: %w", err)
	}

	r := &ConvolutionReverb{ir: ir.Clone()}

	if ir.Len() > conv.DirectThreshold {
		engine, err := conv.NewOverlapAdd(r.ir.Samples, 0)
		if err != nil {
			return nil, fmt.Errorf("reverb: convolution engine: %w", err)
		}
		r.engine = engine
	}

	return r, nil
}

// IRLen returns the impulse response length in samples.
func (r *ConvolutionReverb) IRLen() int {
	return r.ir.Len()
}

// Process returns the full convolution of w with the impulse response,
// len(w)+IRLen()-1 samples long. An empty waveform yields an empty result.
func (r *ConvolutionReverb) Process(w core.Waveform) (core.Waveform, error) {
	if w.SampleRate != r.ir.SampleRate {
		return core.Waveform{}, fmt.Errorf("%w: signal %d Hz, impulse response %d Hz",
			ErrSampleRateMismatch, w.SampleRate, r.ir.SampleRate)
	}

	if w.Len() == 0 {
		return w.WithSamples([]float64{}), nil
	}

	var (
		out []float64
		err error
	)
	if r.engine != nil {
		out, err = r.engine.Process(w.Samples)
	} else {
		out, err = conv.Direct(w.Samples, r.ir.Samples)
	}
	if err != nil {
		return core.Waveform{}, fmt.Errorf("reverb: %w", err)
	}

	return w.WithSamples(out), nil
}

// Apply convolves w with ir in one shot.
func Apply(w, ir core.Waveform) (core.Waveform, error) {
	r, err := NewConvolutionReverb(ir)
	if err != nil {
		return core.Waveform{}, err
	}

	return r.Process(w)
}
