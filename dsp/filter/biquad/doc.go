// Package biquad provides second-order IIR section primitives.
//
// A [Section] filters with Direct Form II Transposed for one set of
// [Coefficients]. A [Chain] cascades sections for higher-order designs and
// can be primed with steady-state initial conditions, which zero-phase
// filtering uses to suppress start-up transients.
//
// Coefficient design lives in dsp/filter/design.
package biquad
