// Package reverb provides offline convolution reverb.
//
// [Apply] convolves a waveform with an impulse response and returns the full
// linear convolution, so the output is len(ir)-1 samples longer than the
// input. Long impulse responses are convolved with FFT overlap-add.
//
// [SynthesizeIR] builds a room-like impulse response from an exponential
// envelope modulated by uniform noise. [PrepareIR] brings an externally
// loaded impulse response to the signal's sample rate.
package reverb
