package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design/pass"
)

// Order limits accepted by Butterworth.
const (
	MinOrder = 1
	MaxOrder = 24
)

// Errors returned by Butterworth.
var (
	ErrInvalidKind       = errors.New("design: unknown filter kind")
	ErrInvalidOrder      = errors.New("design: order out of range")
	ErrInvalidSampleRate = errors.New("design: sample rate must be > 0")
	ErrInvalidCutoff     = errors.New("design: normalized cutoff must be in (0, 1)")
	ErrInvalidBand       = errors.New("design: band low edge must be below high edge")
	ErrUnstable          = errors.New("design: unstable filter")
)

// Kind selects the response type of a design.
type Kind int

const (
	// Lowpass passes frequencies below the cutoff.
	Lowpass Kind = iota
	// Highpass passes frequencies above the cutoff.
	Highpass
	// Bandpass passes frequencies between two cutoffs.
	Bandpass
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Coefficients is a designed Butterworth filter.
type Coefficients struct {
	Kind Kind
	// Order is the prototype order. A band-pass of order N has 2N poles.
	Order int
	// Cutoffs holds the -3 dB frequencies in Hz: one for low/high-pass,
	// [low, high] for band-pass.
	Cutoffs    []float64
	SampleRate float64
	Sections   []biquad.Coefficients
}

// Butterworth designs a Butterworth filter of the given kind.
//
// Lowpass and Highpass take one cutoff, Bandpass takes low and high edges.
// Each cutoff normalized to Nyquist, f/(sampleRate/2), must lie strictly
// inside (0, 1).
func Butterworth(kind Kind, order int, sampleRate float64, cutoffs ...float64) (Coefficients, error) {
	if order < MinOrder || order > MaxOrder {
		return Coefficients{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidOrder, order, MinOrder, MaxOrder)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Coefficients{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	want := 1
	if kind == Bandpass {
		want = 2
	}
	if kind < Lowpass || kind > Bandpass {
		return Coefficients{}, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	if len(cutoffs) != want {
		return Coefficients{}, fmt.Errorf("%w: %s needs %d cutoff(s), got %d", ErrInvalidCutoff, kind, want, len(cutoffs))
	}

	nyquist := sampleRate / 2
	for _, fc := range cutoffs {
		if wn := fc / nyquist; !(wn > 0 && wn < 1) {
			return Coefficients{}, fmt.Errorf("%w: %v Hz at %v Hz sample rate", ErrInvalidCutoff, fc, sampleRate)
		}
	}

	var sections []biquad.Coefficients
	switch kind {
	case Lowpass:
		sections = pass.ButterworthLP(cutoffs[0], order, sampleRate)
	case Highpass:
		sections = pass.ButterworthHP(cutoffs[0], order, sampleRate)
	case Bandpass:
		if !(cutoffs[0] < cutoffs[1]) {
			return Coefficients{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidBand, cutoffs[0], cutoffs[1])
		}
		sections = pass.ButterworthBP(cutoffs[0], cutoffs[1], order, sampleRate)
	}

	if len(sections) == 0 || !biquad.IsStable(sections) {
		return Coefficients{}, fmt.Errorf("%w: %s order %d at %v Hz", ErrUnstable, kind, order, cutoffs)
	}

	return Coefficients{
		Kind:       kind,
		Order:      order,
		Cutoffs:    append([]float64(nil), cutoffs...),
		SampleRate: sampleRate,
		Sections:   sections,
	}, nil
}

// TransferFunction expands the cascade into numerator b and denominator a
// polynomials in z^-1, with a[0] == 1. First-order sections contribute
// degree one, so len(b) == len(a) == total order + 1.
func (c Coefficients) TransferFunction() (b, a []float64) {
	b = []float64{1}
	a = []float64{1}

	for _, s := range c.Sections {
		sb := []float64{s.B0, s.B1, s.B2}
		sa := []float64{1, s.A1, s.A2}
		if s.IsFirstOrder() {
			sb, sa = sb[:2], sa[:2]
		}

		// Both operands are non-empty, so Direct cannot fail.
		b, _ = conv.Direct(b, sb)
		a, _ = conv.Direct(a, sa)
	}

	return b, a
}

// Chain returns a fresh processing cascade for the design.
func (c Coefficients) Chain() *biquad.Chain {
	return biquad.NewChain(c.Sections)
}
