//go:build fastmath

package dynamics

const tanhTolerance = 1e-3
