package ir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Errors returned by the analysis functions.
var (
	ErrEmptyIR = errors.New("ir: impulse response is empty")
	ErrNoDecay = errors.New("ir: insufficient decay for a reverberation time")
)

// schroederFloor is the level assigned once the remaining energy is zero.
const schroederFloor = -200.0

// Metrics holds the figures of one impulse response. Decay times are in
// seconds and are 0 when the curve does not reach the fit range.
type Metrics struct {
	RT60       float64 // T30, or T20 when T30 is unavailable
	EDT        float64
	T20        float64
	T30        float64
	C50        float64 // early-to-late ratio at 50 ms, dB
	C80        float64 // early-to-late ratio at 80 ms, dB
	D50        float64 // early energy fraction at 50 ms
	CenterTime float64 // energy centroid, seconds
	PeakIndex  int
}

// Analyze computes all metrics of w, measured from its absolute peak.
func Analyze(w core.Waveform) (Metrics, error) {
	if err := check(w); err != nil {
		return Metrics{}, err
	}

	peak := peakIndex(w.Samples)
	h := w.Samples[peak:]
	fs := float64(w.SampleRate)
	curve := schroeder(h)

	m := Metrics{
		PeakIndex:  peak,
		EDT:        decayTime(curve, fs, 0, -10),
		T20:        decayTime(curve, fs, -5, -25),
		T30:        decayTime(curve, fs, -5, -35),
		C50:        clarity(h, boundary(50, fs)),
		C80:        clarity(h, boundary(80, fs)),
		D50:        definition(h, boundary(50, fs)),
		CenterTime: centerTime(h, fs),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the reverberation time of w, or ErrNoDecay when the
// Schroeder curve never falls 25 dB.
func RT60(w core.Waveform) (float64, error) {
	m, err := Analyze(w)
	if err != nil {
		return 0, err
	}
	if m.RT60 == 0 {
		return 0, ErrNoDecay
	}
	return m.RT60, nil
}

// Schroeder returns the backward-integrated energy decay of w in dB,
// normalized to 0 dB at the first sample.
func Schroeder(w core.Waveform) ([]float64, error) {
	if err := check(w); err != nil {
		return nil, err
	}
	return schroeder(w.Samples), nil
}

func check(w core.Waveform) error {
	if w.Len() == 0 {
		return ErrEmptyIR
	}
	if w.SampleRate <= 0 {
		return fmt.Errorf("ir: %w: %d", core.ErrInvalidSampleRate, w.SampleRate)
	}
	return nil
}

func schroeder(h []float64) []float64 {
	out := make([]float64, len(h))

	var sum float64
	for i := len(h) - 1; i >= 0; i-- {
		sum += h[i] * h[i]
		out[i] = sum
	}

	total := out[0]
	for i, e := range out {
		if total <= 0 || e <= 0 {
			out[i] = schroederFloor
			continue
		}
		out[i] = 10 * math.Log10(e/total)
	}

	return out
}

// decayTime fits a line to curve between startDB and endDB and returns
// the time it takes to fall 60 dB at that slope.
func decayTime(curve []float64, sampleRate, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}

	if start < 0 || end <= start {
		return 0
	}

	var sx, sy, sxx, sxy float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		sx += x
		sy += curve[i]
		sxx += x * x
		sxy += x * curve[i]
	}

	n := float64(end - start + 1)
	denom := n*sxx - sx*sx
	if denom == 0 {
		return 0
	}

	slope := (n*sxy - sx*sy) / denom * sampleRate
	if slope >= 0 {
		return 0
	}

	return -60 / slope
}

func boundary(ms, sampleRate float64) int {
	return int(math.Round(ms * 0.001 * sampleRate))
}

func split(h []float64, at int) (early, late float64) {
	for i, v := range h {
		if i < at {
			early += v * v
		} else {
			late += v * v
		}
	}
	return early, late
}

func clarity(h []float64, at int) float64 {
	early, late := split(h, at)
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(early/late)
}

func definition(h []float64, at int) float64 {
	early, late := split(h, at)
	if early+late <= 0 {
		return 0
	}
	return early / (early + late)
}

func centerTime(h []float64, sampleRate float64) float64 {
	var num, den float64
	for i, v := range h {
		e := v * v
		num += float64(i) / sampleRate * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

func peakIndex(h []float64) int {
	idx, peak := 0, 0.0
	for i, v := range h {
		if a := math.Abs(v); a > peak {
			idx, peak = i, a
		}
	}
	return idx
}
