package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Errors returned by spectrum analysis.
var (
	ErrEmptyInput   = errors.New("spectrum: empty input")
	ErrInvalidRange = errors.New("spectrum: invalid frequency range")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |X[k]| for each complex bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)
	return out
}

// Power returns |X[k]|^2 for each complex bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	scratchPool.Put(buf)
	return out
}

// minFFTSize is the smallest transform Analyze uses.
const minFFTSize = 16

// PowerSpectrum is the one-sided energy spectrum of a waveform.
//
// Bins[k] holds the energy at frequency k*SampleRate/FFTSize for
// k = 0..FFTSize/2. Interior bins carry their negative-frequency mirror, so
// the bins sum to the time-domain energy sum(x[n]^2).
type PowerSpectrum struct {
	Bins       []float64
	FFTSize    int
	SampleRate int
}

// Analyze computes the power spectrum of w using a rectangular window and an
// FFT of the next power of two at or above w.Len(), but at least 16.
func Analyze(w core.Waveform) (*PowerSpectrum, error) {
	if w.Len() == 0 {
		return nil, ErrEmptyInput
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	n := minFFTSize
	for n < w.Len() {
		n <<= 1
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range w.Samples {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	half := n / 2
	bins := Power(buf[:half+1])

	scale := 1 / float64(n)
	for k := range bins {
		if k != 0 && k != half {
			bins[k] *= 2 * scale
		} else {
			bins[k] *= scale
		}
	}

	return &PowerSpectrum{Bins: bins, FFTSize: n, SampleRate: w.SampleRate}, nil
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (p *PowerSpectrum) BinFrequency(k int) float64 {
	return float64(k) * float64(p.SampleRate) / float64(p.FFTSize)
}

// TotalEnergy returns the sum over all bins.
func (p *PowerSpectrum) TotalEnergy() float64 {
	sum := 0.0
	for _, v := range p.Bins {
		sum += v
	}
	return sum
}

// BandEnergy returns the energy of bins whose frequency lies in [lo, hi].
func (p *PowerSpectrum) BandEnergy(lo, hi float64) (float64, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo < 0 || hi < lo {
		return 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}

	sum := 0.0
	for k, v := range p.Bins {
		f := p.BinFrequency(k)
		if f < lo {
			continue
		}
		if f > hi {
			break
		}
		sum += v
	}
	return sum, nil
}

// BandEnergy is a convenience wrapper around Analyze and
// PowerSpectrum.BandEnergy.
func BandEnergy(w core.Waveform, lo, hi float64) (float64, error) {
	p, err := Analyze(w)
	if err != nil {
		return 0, err
	}
	return p.BandEnergy(lo, hi)
}
