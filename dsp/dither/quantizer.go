package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1] to signed integer codes of a fixed bit
// depth. Full scale maps to +-(2^(bits-1)-1); out-of-range input is clamped.
//
// A Quantizer is not safe for concurrent use.
type Quantizer struct {
	bitDepth  int
	typ       Type
	amplitude float64
	rng       RandSource

	scale  float64
	lo, hi int
}

// NewQuantizer creates a Quantizer. The default is 16-bit without dither.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:  cfg.bitDepth,
		typ:       cfg.typ,
		amplitude: cfg.amplitude,
		rng:       cfg.rng,
	}

	if q.rng == nil && q.typ != None {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	full := math.Exp2(float64(q.bitDepth - 1))
	q.scale = full - 1
	q.lo = -int(full)
	q.hi = int(full) - 1

	return q, nil
}

// Quantize returns the integer code for x.
func (q *Quantizer) Quantize(x float64) int {
	scaled := q.scale*max(-1, min(1, x)) + q.noise()

	code := int(math.Round(scaled))
	return max(q.lo, min(q.hi, code))
}

// QuantizeBlock writes the codes for src into dst, which must be at least
// as long as src.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) {
	for i, v := range src {
		dst[i] = q.Quantize(v)
	}
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.amplitude * (q.rng.Float64()*2 - 1)
	case Triangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither noise type.
func (q *Quantizer) Type() Type { return q.typ }

// Amplitude returns the dither noise amplitude in LSB.
func (q *Quantizer) Amplitude() float64 { return q.amplitude }
