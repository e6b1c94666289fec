// Package level computes time-domain level statistics of a signal.
package level

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Stats holds time-domain level statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	PeakPos       int
	CrestFactor   float64 // Peak / RMS, 0 for silence
	ZeroCrossings int
}

// PeakDB returns the peak in dBFS.
func (s Stats) PeakDB() float64 { return core.LinearToDB(s.Peak) }

// RMSDB returns the RMS level in dBFS.
func (s Stats) RMSDB() float64 { return core.LinearToDB(s.RMS) }

// CrestFactorDB returns the crest factor in dB, 0 for silence.
func (s Stats) CrestFactorDB() float64 {
	if s.CrestFactor == 0 {
		return 0
	}
	return 20 * math.Log10(s.CrestFactor)
}

// Calculate computes all statistics in a single pass. The mean uses
// Kahan summation.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		sum, comp float64
		sumSq     float64
		peak      float64
		peakPos   int
		crossings int
	)

	for i, x := range signal {
		y := x - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			crossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:        n,
		DC:            sum / nf,
		RMS:           rms,
		Peak:          peak,
		PeakPos:       peakPos,
		CrestFactor:   crest,
		ZeroCrossings: crossings,
	}
}

// Of returns the statistics of a waveform's samples.
func Of(w core.Waveform) Stats {
	return Calculate(w.Samples)
}
