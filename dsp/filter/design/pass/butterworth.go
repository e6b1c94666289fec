// Package pass provides Butterworth pass-filter designers that return
// cascades of biquad sections.
//
// All designers prewarp their band edges for the bilinear transform, so the
// digital responses are exactly -3 dB at the requested cutoff frequencies.
// Invalid parameters yield a nil cascade.
package pass

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// The cascade has order/2 biquads followed, for odd orders, by a
// first-order section (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := bilinearK(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// The cascade has order/2 biquads followed, for odd orders, by a
// first-order section (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	if _, ok := bilinearK(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, highpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBP designs a bandpass Butterworth cascade with -3 dB edges at
// low and high.
//
// An order-N lowpass prototype is mapped to an order-2N bandpass, returned
// as N biquads. Every section has zeros at z = ±1 and unity gain at the
// prewarped geometric centre frequency, so the cascade passes the band
// centre at 0 dB.
func ButterworthBP(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !(low < high) {
		return nil
	}

	wl, okLow := bilinearK(low, sampleRate)
	wh, okHigh := bilinearK(high, sampleRate)
	if !okLow || !okHigh {
		return nil
	}

	bw := wh - wl
	w0sq := wl * wh
	centre := 2 * math.Atan(math.Sqrt(w0sq))

	sections := make([]biquad.Coefficients, 0, order)
	for k := range order {
		p := butterworthPole(order, k)
		if imag(p) < 0 {
			// Covered by the conjugate of its upper-half partner.
			continue
		}

		s1, s2 := lowpassToBandpass(p, bw, w0sq)
		z1, z2 := bilinearZ(s1), bilinearZ(s2)

		if imag(p) == 0 {
			sections = append(sections, bandpassSection(z1, z2, centre))
			continue
		}

		sections = append(sections,
			bandpassSection(z1, cmplx.Conj(z1), centre),
			bandpassSection(z2, cmplx.Conj(z2), centre),
		)
	}

	alignCentrePhase(sections, centre)
	return sections
}

// butterworthPole returns the k-th left half-plane pole of the normalized
// analog Butterworth prototype. The real pole of odd orders is returned
// with an exactly zero imaginary part.
func butterworthPole(order, k int) complex128 {
	if order%2 == 1 && k == (order-1)/2 {
		return -1
	}

	theta := math.Pi * float64(2*k+order+1) / float64(2*order)
	return cmplx.Exp(complex(0, theta))
}

// lowpassToBandpass solves s^2 - p*bw*s + w0sq = 0, the two bandpass poles
// that a prototype pole p maps to.
func lowpassToBandpass(p complex128, bw, w0sq float64) (complex128, complex128) {
	pb := p * complex(bw, 0)
	root := cmplx.Sqrt(pb*pb - complex(4*w0sq, 0))
	return (pb + root) / 2, (pb - root) / 2
}

// bilinearZ maps an analog pole (prewarped, unit bilinear constant) to z.
func bilinearZ(s complex128) complex128 {
	return (1 + s) / (1 - s)
}

// bandpassSection builds g*(1 - z^-2) / ((1 - z1 z^-1)(1 - z2 z^-1)) with g
// chosen for unit magnitude at centre (radians per sample).
func bandpassSection(z1, z2 complex128, centre float64) biquad.Coefficients {
	c := biquad.Coefficients{
		B0: 1,
		B2: -1,
		A1: -real(z1 + z2),
		A2: real(z1 * z2),
	}

	h := cmplx.Abs(sectionResponse(c, centre))
	if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return c
	}

	c.B0 /= h
	c.B2 /= h
	return c
}

// alignCentrePhase flips the sign of the first section if the cascade would
// otherwise invert the band centre.
func alignCentrePhase(sections []biquad.Coefficients, centre float64) {
	if len(sections) == 0 {
		return
	}

	h := complex(1, 0)
	for i := range sections {
		h *= sectionResponse(sections[i], centre)
	}

	if real(h) < 0 {
		sections[0].B0 = -sections[0].B0
		sections[0].B1 = -sections[0].B1
		sections[0].B2 = -sections[0].B2
	}
}

func sectionResponse(c biquad.Coefficients, w float64) complex128 {
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2
	return num / den
}
