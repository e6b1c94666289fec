// Package fir provides moving-average FIR smoothing.
//
// [Smooth] is the offline smoother used by the processing chain: a uniform
// kernel applied with "same" convolution so that the output keeps the input
// length and stays centred.
package fir
