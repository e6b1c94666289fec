package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/amplitude"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

// Default setting values.
const (
	DefaultTargetPeak       = 0.99
	DefaultSmoothingK       = 1
	DefaultLimiterThreshold = 0.9
	DefaultFilterOrder      = 5
)

// ErrInvalidSettings wraps every configuration error reported by
// Settings.Validate.
var ErrInvalidSettings = errors.New("effectchain: invalid settings")

// Settings configures one pipeline run. The zero value is valid and runs
// only the final clip.
type Settings struct {
	GainDB     float64 `json:"gain_db"`
	Normalize  bool    `json:"normalize"`
	TargetPeak float64 `json:"target_peak"`

	Reverb bool `json:"reverb"`
	// ReverbIR replaces the synthesised impulse response when set. It is
	// resampled to the signal rate if needed.
	ReverbIR *core.Waveform `json:"-"`

	// SmoothingK is the moving-average length. 0 and 1 disable smoothing.
	SmoothingK int `json:"smoothing_k"`

	// LimiterThreshold enables the soft limiter when strictly inside (0, 1).
	// 0 and values >= 1 disable it.
	LimiterThreshold float64 `json:"soft_limiter_th"`

	LowPassCutoff  *float64 `json:"low_pass_cutoff"`
	HighPassCutoff *float64 `json:"high_pass_cutoff"`
	BandLow        *float64 `json:"band_low"`
	BandHigh       *float64 `json:"band_high"`
	FilterOrder    int      `json:"filter_order"`
}

// DefaultSettings returns settings with the default target peak, smoothing
// kernel, limiter threshold and filter order. Only the limiter is active.
func DefaultSettings() Settings {
	return Settings{
		TargetPeak:       DefaultTargetPeak,
		SmoothingK:       DefaultSmoothingK,
		LimiterThreshold: DefaultLimiterThreshold,
		FilterOrder:      DefaultFilterOrder,
	}
}

func (s Settings) gainEnabled() bool { return math.Abs(s.GainDB) > amplitude.GainSkipThreshold }

func (s Settings) limiterEnabled() bool {
	return s.LimiterThreshold > 0 && s.LimiterThreshold < 1
}

func (s Settings) bandEnabled() bool { return s.BandLow != nil && s.BandHigh != nil }

func (s Settings) anyFilter() bool {
	return s.LowPassCutoff != nil || s.HighPassCutoff != nil || s.BandLow != nil || s.BandHigh != nil
}

// Validate reports every configuration error for a signal at sampleRate.
// The returned error joins one error per problem, each wrapping
// ErrInvalidSettings.
func (s Settings) Validate(sampleRate int) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}

	if !core.IsFinite(core.DBToLinear(s.GainDB)) {
		add("gain_db must give a finite linear gain, got %v", s.GainDB)
	}

	if s.Normalize && !(s.TargetPeak > 0 && s.TargetPeak <= 1) {
		add("target_peak must be in (0, 1], got %v", s.TargetPeak)
	}

	if s.ReverbIR != nil && s.Reverb {
		if s.ReverbIR.Len() == 0 {
			add("reverb impulse response is empty")
		} else if err := s.ReverbIR.Validate(); err != nil {
			add("reverb impulse response: %w", err)
		}
	}

	if s.SmoothingK < 0 {
		add("smoothing_k must be >= 0, got %d", s.SmoothingK)
	}

	if math.IsNaN(s.LimiterThreshold) || s.LimiterThreshold < 0 {
		add("soft_limiter_th must be >= 0, got %v", s.LimiterThreshold)
	}

	if s.anyFilter() {
		errs = append(errs, s.validateFilters(sampleRate)...)
	}

	return errors.Join(errs...)
}

func (s Settings) validateFilters(sampleRate int) []error {
	var errs []error

	if s.FilterOrder < design.MinOrder || s.FilterOrder > design.MaxOrder {
		return []error{fmt.Errorf("%w: filter_order must be in [%d, %d], got %d",
			ErrInvalidSettings, design.MinOrder, design.MaxOrder, s.FilterOrder)}
	}

	check := func(name string, kind design.Kind, cutoffs ...float64) {
		_, err := design.Butterworth(kind, s.FilterOrder, float64(sampleRate), cutoffs...)
		if err != nil && !errors.Is(err, design.ErrUnstable) {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, name, err))
		}
	}

	if s.LowPassCutoff != nil {
		check("low_pass_cutoff", design.Lowpass, *s.LowPassCutoff)
	}
	if s.HighPassCutoff != nil {
		check("high_pass_cutoff", design.Highpass, *s.HighPassCutoff)
	}

	switch {
	case s.bandEnabled():
		check("band_low/band_high", design.Bandpass, *s.BandLow, *s.BandHigh)
	case s.BandLow != nil || s.BandHigh != nil:
		errs = append(errs, fmt.Errorf("%w: band_low and band_high must be set together", ErrInvalidSettings))
	}

	return errs
}

// Request is the JSON settings document accepted by the command line tool.
// reverb_ir names an impulse response file for the caller to load.
type Request struct {
	Settings

	ReverbIRPath string `json:"reverb_ir"`
}

// ParseRequest decodes a JSON settings document on top of DefaultSettings.
// Cutoffs that are null or 0 leave the corresponding filter disabled.
func ParseRequest(data []byte) (Request, error) {
	req := Request{Settings: DefaultSettings()}
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("effectchain: decoding settings: %w", err)
	}

	for _, p := range []**float64{&req.LowPassCutoff, &req.HighPassCutoff, &req.BandLow, &req.BandHigh} {
		if *p != nil && **p == 0 {
			*p = nil
		}
	}

	return req, nil
}

// Float returns a pointer to v, for filling optional cutoffs.
func Float(v float64) *float64 {
	return &v
}
