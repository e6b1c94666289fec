// Package signal generates deterministic waveforms for tests and demos.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// ErrInvalidLength is returned for negative sample counts.
var ErrInvalidLength = errors.New("signal: invalid length")

// Generator creates deterministic waveforms from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. The sample rate defaults to
// core.DefaultSampleRate and the seed to 1.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the rate of generated waveforms.
func (g *Generator) SampleRate() int {
	return g.cfg.SampleRate
}

// Seed returns the noise seed.
func (g *Generator) Seed() uint64 {
	return g.seed
}

func (g *Generator) alloc(samples int) (core.Waveform, error) {
	if samples < 0 {
		return core.Waveform{}, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return core.Waveform{}, fmt.Errorf("signal: %w: %d", core.ErrInvalidSampleRate, g.cfg.SampleRate)
	}
	return core.Waveform{Samples: make([]float64, samples), SampleRate: g.cfg.SampleRate}, nil
}

// Sine generates amplitude*sin(2*pi*freqHz*n/fs).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (core.Waveform, error) {
	w, err := g.alloc(samples)
	if err != nil {
		return w, err
	}

	step := 2 * math.Pi * freqHz / float64(g.cfg.SampleRate)
	for i := range w.Samples {
		w.Samples[i] = amplitude * math.Sin(step*float64(i))
	}
	return w, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude). The same
// seed always yields the same samples.
func (g *Generator) WhiteNoise(amplitude float64, samples int) (core.Waveform, error) {
	if amplitude < 0 || !core.IsFinite(amplitude) {
		return core.Waveform{}, fmt.Errorf("signal: noise amplitude must be finite and >= 0: %v", amplitude)
	}

	w, err := g.alloc(samples)
	if err != nil {
		return w, err
	}

	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	for i := range w.Samples {
		w.Samples[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return w, nil
}

// Silence generates all-zero samples.
func (g *Generator) Silence(samples int) (core.Waveform, error) {
	return g.alloc(samples)
}

// Impulse generates a unit impulse at index pos.
func (g *Generator) Impulse(samples, pos int) (core.Waveform, error) {
	w, err := g.alloc(samples)
	if err != nil {
		return w, err
	}

	if pos < 0 || pos >= samples {
		return core.Waveform{}, fmt.Errorf("signal: impulse position %d outside [0, %d)", pos, samples)
	}
	w.Samples[pos] = 1
	return w, nil
}
