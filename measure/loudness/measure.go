package loudness

import "github.com/cwbudde/algo-audiofx/dsp/core"

// Result summarizes the loudness of a complete signal.
type Result struct {
	Integrated   float64 // LUFS, -Inf when fully gated
	MaxMomentary float64 // LUFS, -Inf for signals shorter than 400 ms
	Peak         float64 // linear sample peak
}

// Measure runs a fresh meter over w.
func Measure(w core.Waveform) (Result, error) {
	m, err := NewMeter(float64(w.SampleRate))
	if err != nil {
		return Result{}, err
	}

	m.ProcessBlock(w.Samples)

	return Result{
		Integrated:   m.Integrated(),
		MaxMomentary: m.MaxMomentary(),
		Peak:         m.Peak(),
	}, nil
}
