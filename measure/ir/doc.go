// Package ir measures decay and energy-balance figures of impulse
// responses, such as the reverb kernels used by the effect chain.
//
// Decay times come from a line fit to the Schroeder backward integral
// S(t) = 10*log10(sum_{k>=t} h[k]^2 / sum h^2), extrapolated to -60 dB:
// EDT fits 0 to -10 dB, T20 fits -5 to -25 dB and T30 fits -5 to -35 dB.
//
//	m, err := ir.Analyze(kernel)
//	fmt.Printf("RT60 %.2f s, C80 %.1f dB\n", m.RT60, m.C80)
package ir
