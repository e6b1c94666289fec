package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Band is one row of a band-energy report.
type Band struct {
	Low, High float64
	Energy    float64
	// Share is Energy divided by the total energy, 0 for silence.
	Share float64
}

// DB returns Share in decibels, or -Inf for an empty band.
func (b Band) DB() float64 {
	return core.LinearToDB(math.Sqrt(b.Share))
}

// OctaveEdges returns octave band edges starting at lowest and doubling
// until the Nyquist frequency. The last edge is clamped to Nyquist.
func OctaveEdges(lowest float64, sampleRate int) []float64 {
	nyquist := float64(sampleRate) / 2
	if !(lowest > 0) || lowest >= nyquist {
		return nil
	}

	edges := []float64{0}
	for f := lowest; f < nyquist; f *= 2 {
		edges = append(edges, f)
	}
	return append(edges, nyquist)
}

// Report splits the spectrum at the given ascending edges and returns one
// Band per adjacent pair. A bin on a shared edge is counted in the upper band.
func (p *PowerSpectrum) Report(edges []float64) ([]Band, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two edges, got %d", ErrInvalidRange, len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, fmt.Errorf("%w: edges must increase at index %d", ErrInvalidRange, i)
		}
	}

	total := p.TotalEnergy()
	bands := make([]Band, len(edges)-1)
	for i := range bands {
		bands[i].Low, bands[i].High = edges[i], edges[i+1]
	}

	last := len(bands) - 1
	for k, v := range p.Bins {
		f := p.BinFrequency(k)
		if f < edges[0] || f > edges[len(edges)-1] {
			continue
		}
		j := 0
		for j < last && f >= edges[j+1] {
			j++
		}
		bands[j].Energy += v
	}

	if total > 0 {
		for i := range bands {
			bands[i].Share = bands[i].Energy / total
		}
	}

	return bands, nil
}
