// Package effectchain runs the fixed offline processing pipeline:
//
//	gain -> normalize -> reverb -> smoothing -> limiter ->
//	low-pass -> high-pass -> band-pass -> final clip
//
// Each stage is gated by [Settings] and consumes one [core.Waveform],
// producing a new one. The closing clip guarantees that every output sample
// lies in [-1, 1].
//
// Settings are validated before any stage runs. A frequency filter whose
// design turns out unstable, or whose output is not finite, is skipped and
// reported in [Result.Skipped]; [WithStrictFilters] turns such skips into
// errors instead.
package effectchain
