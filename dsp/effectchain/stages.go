package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/amplitude"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/effects/reverb"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
	"github.com/cwbudde/algo-audiofx/dsp/filter/fir"
	"github.com/cwbudde/algo-audiofx/dsp/filter/zerophase"
)

// Stage names, in pipeline order.
const (
	StageGain      = "gain"
	StageNormalize = "normalize"
	StageReverb    = "reverb"
	StageSmoothing = "smoothing"
	StageLimiter   = "limiter"
	StageLowPass   = "low-pass"
	StageHighPass  = "high-pass"
	StageBandPass  = "band-pass"
	StageFinalClip = "final-clip"
)

type stage struct {
	name string
	// filter marks frequency filters, whose runtime failures are skippable.
	filter  bool
	enabled func(Settings) bool
	run     func(c *Chain, w core.Waveform, s Settings) (core.Waveform, error)
}

func stages() []stage {
	return []stage{
		{
			name:    StageGain,
			enabled: Settings.gainEnabled,
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return amplitude.Gain(w, s.GainDB), nil
			},
		},
		{
			name:    StageNormalize,
			enabled: func(s Settings) bool { return s.Normalize },
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return amplitude.Normalize(w, s.TargetPeak)
			},
		},
		{
			name:    StageReverb,
			enabled: func(s Settings) bool { return s.Reverb },
			run:     (*Chain).applyReverb,
		},
		{
			name:    StageSmoothing,
			enabled: func(s Settings) bool { return s.SmoothingK > 1 },
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return fir.Smooth(w, s.SmoothingK)
			},
		},
		{
			name:    StageLimiter,
			enabled: Settings.limiterEnabled,
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return dynamics.SoftLimit(w, s.LimiterThreshold)
			},
		},
		{
			name:    StageLowPass,
			filter:  true,
			enabled: func(s Settings) bool { return s.LowPassCutoff != nil },
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return applyFilter(w, design.Lowpass, s.FilterOrder, *s.LowPassCutoff)
			},
		},
		{
			name:    StageHighPass,
			filter:  true,
			enabled: func(s Settings) bool { return s.HighPassCutoff != nil },
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return applyFilter(w, design.Highpass, s.FilterOrder, *s.HighPassCutoff)
			},
		},
		{
			name:    StageBandPass,
			filter:  true,
			enabled: Settings.bandEnabled,
			run: func(_ *Chain, w core.Waveform, s Settings) (core.Waveform, error) {
				return applyFilter(w, design.Bandpass, s.FilterOrder, *s.BandLow, *s.BandHigh)
			},
		},
	}
}

func (c *Chain) applyReverb(w core.Waveform, s Settings) (core.Waveform, error) {
	var (
		ir  core.Waveform
		err error
	)

	if s.ReverbIR != nil {
		ir, err = reverb.PrepareIR(*s.ReverbIR, w.SampleRate)
	} else {
		var opts []reverb.IROption
		if c.rng != nil {
			opts = append(opts, reverb.WithRand(c.rng))
		}
		ir, err = reverb.SynthesizeIR(w.SampleRate, opts...)
	}
	if err != nil {
		return core.Waveform{}, err
	}

	return reverb.Apply(w, ir)
}

// applyFilter designs a Butterworth filter for w's sample rate and runs it
// forward and backward.
func applyFilter(w core.Waveform, kind design.Kind, order int, cutoffs ...float64) (core.Waveform, error) {
	coeffs, err := design.Butterworth(kind, order, float64(w.SampleRate), cutoffs...)
	if err != nil {
		return core.Waveform{}, err
	}

	out, err := zerophase.Filter(coeffs.Sections, w.Samples)
	if err != nil {
		return core.Waveform{}, fmt.Errorf("%s filter: %w", kind, err)
	}

	return w.WithSamples(out), nil
}
