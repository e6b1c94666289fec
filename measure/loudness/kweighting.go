package loudness

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
)

const (
	shelfFreq   = 1500.0
	shelfGainDB = 4.0
	highpassHz  = 38.0
)

// kWeighting returns the two K-weighting sections for sampleRate using the
// RBJ cookbook high shelf and high-pass at Q = 1/sqrt(2).
func kWeighting(sampleRate float64) []biquad.Coefficients {
	q := 1 / math.Sqrt2

	return []biquad.Coefficients{
		highShelf(shelfFreq, shelfGainDB, q, sampleRate),
		highpass(highpassHz, q, sampleRate),
	}
}

func highShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	return normalize(
		a*((a+1)+(a-1)*cw+beta),
		-2*a*((a-1)+(a+1)*cw),
		a*((a+1)+(a-1)*cw-beta),
		(a+1)-(a-1)*cw+beta,
		2*((a-1)-(a+1)*cw),
		(a+1)-(a-1)*cw-beta,
	)
}

func highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)

	return normalize(
		(1+cw)/2,
		-(1 + cw),
		(1+cw)/2,
		1+alpha,
		-2*cw,
		1-alpha,
	)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
