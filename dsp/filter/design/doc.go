// Package design turns Butterworth filter parameters into validated
// biquad cascades.
//
// [Butterworth] checks order, sample rate and cutoff frequencies, delegates
// the pole placement to dsp/filter/design/pass and rejects any design that
// is not numerically stable. The returned [Coefficients] can be expanded to
// a single numerator/denominator pair with [Coefficients.TransferFunction].
package design
