// Package resample provides offline rational sample-rate conversion using a
// polyphase Kaiser-windowed sinc filter.
//
// Conversion is delay-compensated: output sample m lines up in time with
// input position m*down/up, so a resampled impulse response keeps its onset.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
