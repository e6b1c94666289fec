package reverb

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Defaults for SynthesizeIR.
const (
	DefaultDecay    = 3.0
	DefaultLength   = 1.2
	DefaultNoiseMin = 0.9
	DefaultNoiseMax = 1.1
)

// ErrInvalidIRParams is returned for out-of-range synthesis parameters.
var ErrInvalidIRParams = errors.New("reverb: invalid impulse response parameters")

// RandSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type irConfig struct {
	decay    float64
	length   float64
	noiseMin float64
	noiseMax float64
	rng      RandSource
}

// IROption configures SynthesizeIR.
type IROption func(*irConfig)

// WithDecay sets the exponential decay rate in 1/s.
func WithDecay(decay float64) IROption {
	return func(cfg *irConfig) { cfg.decay = decay }
}

// WithLength sets the impulse response length in seconds.
func WithLength(seconds float64) IROption {
	return func(cfg *irConfig) { cfg.length = seconds }
}

// WithNoiseRange sets the bounds of the multiplicative noise.
func WithNoiseRange(lo, hi float64) IROption {
	return func(cfg *irConfig) {
		cfg.noiseMin = lo
		cfg.noiseMax = hi
	}
}

// WithRand sets the random source. The default draws from a generator
// seeded by the runtime, so results differ between calls.
func WithRand(src RandSource) IROption {
	return func(cfg *irConfig) {
		if src != nil {
			cfg.rng = src
		}
	}
}

// SynthesizeIR returns an impulse response of int(sampleRate*length)
// samples with
//
//	ir[i] = exp(-decay * i/sampleRate) * u_i,  u_i ~ U[noiseMin, noiseMax)
func SynthesizeIR(sampleRate int, opts ...IROption) (core.Waveform, error) {
	cfg := irConfig{
		decay:    DefaultDecay,
		length:   DefaultLength,
		noiseMin: DefaultNoiseMin,
		noiseMax: DefaultNoiseMax,
	}
	for _, o := range opts {
		o(&cfg)
	}

	if sampleRate <= 0 {
		return core.Waveform{}, fmt.Errorf("%w: sample rate %d", ErrInvalidIRParams, sampleRate)
	}
	if !(cfg.length > 0) || math.IsInf(cfg.length, 0) {
		return core.Waveform{}, fmt.Errorf("%w: length %v s", ErrInvalidIRParams, cfg.length)
	}
	if !(cfg.decay >= 0) || math.IsInf(cfg.decay, 0) {
		return core.Waveform{}, fmt.Errorf("%w: decay %v", ErrInvalidIRParams, cfg.decay)
	}
	if !(cfg.noiseMin <= cfg.noiseMax) || !core.IsFinite(cfg.noiseMin) || !core.IsFinite(cfg.noiseMax) {
		return core.Waveform{}, fmt.Errorf("%w: noise range [%v, %v]", ErrInvalidIRParams, cfg.noiseMin, cfg.noiseMax)
	}

	n := int(float64(sampleRate) * cfg.length)
	if n == 0 {
		return core.Waveform{}, fmt.Errorf("%w: %v s at %d Hz is shorter than one sample", ErrInvalidIRParams, cfg.length, sampleRate)
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	envelope := make([]float64, n)
	ir := make([]float64, n)
	span := cfg.noiseMax - cfg.noiseMin
	for i := range ir {
		envelope[i] = math.Exp(-cfg.decay * float64(i) / float64(sampleRate))
		ir[i] = cfg.noiseMin + span*rng.Float64()
	}

	vecmath.MulBlockInPlace(ir, envelope)

	return core.Waveform{Samples: ir, SampleRate: sampleRate}, nil
}
