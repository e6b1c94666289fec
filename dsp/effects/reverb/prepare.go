package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/resample"
)

// PrepareIR validates an externally supplied impulse response and converts
// it to sampleRate when the rates differ.
func PrepareIR(ir core.Waveform, sampleRate int, opts ...resample.Option) (core.Waveform, error) {
	if ir.Len() == 0 {
		return core.Waveform{}, ErrEmptyIR
	}
	if err := ir.Validate(); err != nil {
		return core.Waveform{}, fmt.Errorf("reverb: impulse response: %w", err)
	}

	out, err := resample.Waveform(ir, sampleRate, opts...)
	if err != nil {
		return core.Waveform{}, fmt.Errorf("reverb: resampling impulse response: %w", err)
	}

	return out, nil
}
