package dither

import (
	"fmt"
	"math"
)

const (
	defaultBitDepth  = 16
	defaultAmplitude = 1.0
	minBitDepth      = 2
	maxBitDepth      = 32
)

// RandSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type config struct {
	bitDepth  int
	typ       Type
	amplitude float64
	rng       RandSource
}

func defaultConfig() config {
	return config{
		bitDepth:  defaultBitDepth,
		typ:       None,
		amplitude: defaultAmplitude,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (2-32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}

		cfg.bitDepth = bits

		return nil
	}
}

// WithType sets the dither noise PDF (default [None]).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidType, int(t))
		}

		cfg.typ = t

		return nil
	}
}

// WithAmplitude sets the dither noise amplitude in LSB (default 1.0).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}

		cfg.amplitude = amp

		return nil
	}
}

// WithRand sets the noise source, for reproducible output.
func WithRand(rng RandSource) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}
