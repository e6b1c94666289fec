// Package dynamics provides static level processors.
//
// [SoftLimit] leaves samples at or below a threshold untouched and maps
// larger magnitudes onto a tanh saturation curve that approaches twice the
// threshold. The result is always bounded to [-1, 1].
//
// Build with -tags fastmath to evaluate tanh with an exp approximation from
// algo-approx instead of the standard library.
package dynamics
