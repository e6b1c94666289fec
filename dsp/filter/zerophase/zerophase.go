// Package zerophase applies IIR cascades forward and backward so that the
// net phase response is zero.
//
// The magnitude response of the cascade is applied twice (squared) and no
// group delay is introduced, which keeps transients aligned in time. Edge
// transients are reduced by extending the signal at both ends and priming
// each pass with the steady-state response to its first sample.
package zerophase

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
)

// ErrNonFinite is returned when filtering produced NaN or Inf samples.
var ErrNonFinite = errors.New("zerophase: non-finite output")

// PadMode selects how the signal is extended before filtering.
type PadMode int

const (
	// PadOdd extends with a point-reflection about each end sample.
	PadOdd PadMode = iota
	// PadEven mirrors the samples next to each end.
	PadEven
	// PadConstant repeats each end sample.
	PadConstant
	// PadNone filters the signal as is.
	PadNone
)

type config struct {
	mode   PadMode
	padLen int
}

// Option configures Filter.
type Option func(*config)

// WithPadMode selects the edge extension. Default is PadOdd.
func WithPadMode(mode PadMode) Option {
	return func(cfg *config) { cfg.mode = mode }
}

// WithPadLength overrides the extension length. Negative values keep the
// default of 3*(order+1) samples.
func WithPadLength(n int) Option {
	return func(cfg *config) { cfg.padLen = n }
}

// DefaultPadLength returns 3*(order+1) for the cascade, the extension used
// when no WithPadLength option is given.
func DefaultPadLength(sections []biquad.Coefficients) int {
	return 3 * (biquad.NewChain(sections).Order() + 1)
}

// Filter runs sections over x forward, then over the reversed result, and
// returns the re-reversed output with len(x) samples.
//
// The extension length is capped at len(x)-1, so inputs shorter than two
// samples are filtered without padding.
func Filter(sections []biquad.Coefficients, x []float64, opts ...Option) ([]float64, error) {
	cfg := config{mode: PadOdd, padLen: -1}
	for _, o := range opts {
		o(&cfg)
	}

	if len(x) == 0 {
		return []float64{}, nil
	}
	if len(sections) == 0 {
		return slices.Clone(x), nil
	}

	padLen := cfg.padLen
	if padLen < 0 {
		padLen = DefaultPadLength(sections)
	}
	if cfg.mode == PadNone {
		padLen = 0
	}
	padLen = min(padLen, len(x)-1)

	ext := extend(x, padLen, cfg.mode)
	chain := biquad.NewChain(sections)

	runPrimed(chain, ext)
	slices.Reverse(ext)
	runPrimed(chain, ext)
	slices.Reverse(ext)

	out := slices.Clone(ext[padLen : padLen+len(x)])
	if i := core.FirstNonFinite(out); i >= 0 {
		return nil, fmt.Errorf("%w at index %d", ErrNonFinite, i)
	}

	return out, nil
}

func runPrimed(chain *biquad.Chain, buf []float64) {
	chain.SetState(chain.SteadyState(buf[0]))
	chain.ProcessBlock(buf)
}

// extend returns x with n samples added at each end according to mode.
// n must be < len(x).
func extend(x []float64, n int, mode PadMode) []float64 {
	last := len(x) - 1
	ext := make([]float64, len(x)+2*n)
	copy(ext[n:], x)

	for i := 1; i <= n; i++ {
		switch mode {
		case PadOdd:
			ext[n-i] = 2*x[0] - x[i]
			ext[n+last+i] = 2*x[last] - x[last-i]
		case PadEven:
			ext[n-i] = x[i]
			ext[n+last+i] = x[last-i]
		default:
			ext[n-i] = x[0]
			ext[n+last+i] = x[last]
		}
	}

	return ext
}
