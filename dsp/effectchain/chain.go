package effectchain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-audiofx/dsp/amplitude"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/reverb"
)

// Errors returned by Process.
var (
	ErrInvalidWaveform = errors.New("effectchain: invalid waveform")
	ErrStageFailed     = errors.New("effectchain: stage failed")
)

// StageError records a stage that did not run to completion.
type StageError struct {
	Stage string
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("effectchain: stage %s: %v", e.Stage, e.Err)
}

func (e StageError) Unwrap() error { return e.Err }

// Result is the outcome of one pipeline run.
type Result struct {
	Waveform core.Waveform
	// Applied lists the stages that ran, in order. The final clip is
	// always last.
	Applied []string
	// Skipped lists frequency filters that failed at runtime and were
	// bypassed.
	Skipped []StageError
}

// Chain runs the pipeline. It holds only configuration and is safe for
// concurrent use when its random source is.
type Chain struct {
	logger logrus.FieldLogger
	rng    reverb.RandSource
	strict bool
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger for per-stage diagnostics. The default is
// logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRand sets the noise source for synthesised impulse responses. By
// default each run draws from a fresh, runtime-seeded generator.
func WithRand(src reverb.RandSource) Option {
	return func(c *Chain) {
		c.rng = src
	}
}

// WithStrictFilters makes frequency-filter failures abort the run with
// ErrStageFailed instead of skipping the stage.
func WithStrictFilters(strict bool) Option {
	return func(c *Chain) {
		c.strict = strict
	}
}

// New creates a Chain.
func New(opts ...Option) *Chain {
	c := &Chain{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Process runs every enabled stage over w and returns the clipped result.
//
// A malformed waveform yields ErrInvalidWaveform and invalid settings yield
// ErrInvalidSettings, both before any stage runs. w is never modified.
func (c *Chain) Process(w core.Waveform, s Settings) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidWaveform, err)
	}
	if err := s.Validate(w.SampleRate); err != nil {
		return Result{}, err
	}

	log := c.logger.WithFields(logrus.Fields{
		"samples":     w.Len(),
		"sample_rate": w.SampleRate,
	})

	res := Result{}
	cur := w
	for _, st := range stages() {
		if !st.enabled(s) {
			continue
		}

		out, err := st.run(c, cur, s)
		if err == nil {
			if i := core.FirstNonFinite(out.Samples); i >= 0 {
				err = fmt.Errorf("%w at index %d", core.ErrNonFinite, i)
			}
		}

		if err != nil {
			stageErr := StageError{Stage: st.name, Err: err}
			if !st.filter || c.strict {
				return Result{}, fmt.Errorf("%w: %w", ErrStageFailed, stageErr)
			}

			log.WithField("stage", st.name).WithError(err).Warn("stage skipped")
			res.Skipped = append(res.Skipped, stageErr)
			continue
		}

		log.WithFields(logrus.Fields{
			"stage": st.name,
			"peak":  out.Peak(),
		}).Debug("stage applied")
		res.Applied = append(res.Applied, st.name)
		cur = out
	}

	res.Waveform = amplitude.SafetyClip(cur)
	res.Applied = append(res.Applied, StageFinalClip)
	log.WithField("stage", StageFinalClip).Debug("stage applied")

	return res, nil
}

// Process runs the pipeline with a default Chain.
func Process(w core.Waveform, s Settings) (Result, error) {
	return New().Process(w, s)
}
