package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
)

// settings builds pipeline settings from the --settings document when given,
// otherwise from the stage flags. It also returns the impulse response path.
func (c *CLI) settings() (effectchain.Settings, string, error) {
	if c.Settings != "" {
		data, err := os.ReadFile(c.Settings)
		if err != nil {
			return effectchain.Settings{}, "", fmt.Errorf("reading settings: %w", err)
		}

		req, err := effectchain.ParseRequest(data)
		if err != nil {
			return effectchain.Settings{}, "", err
		}
		return req.Settings, req.ReverbIRPath, nil
	}

	s := effectchain.Settings{
		GainDB:           c.GainDB,
		Normalize:        c.Normalize,
		TargetPeak:       c.TargetPeak,
		Reverb:           c.Reverb,
		SmoothingK:       c.SmoothingK,
		LimiterThreshold: c.Limiter,
		LowPassCutoff:    optional(c.LowPass),
		HighPassCutoff:   optional(c.HighPass),
		BandLow:          optional(c.BandLow),
		BandHigh:         optional(c.BandHigh),
		FilterOrder:      c.FilterOrder,
	}
	return s, c.ReverbIR, nil
}

// optional maps the flag convention "0 disables" to a nil cutoff.
func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return effectchain.Float(v)
}
