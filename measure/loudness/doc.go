// Package loudness measures programme loudness of mono signals following
// ITU-R BS.1770 and EBU R128.
//
// The signal is K-weighted (a +4 dB high shelf at 1.5 kHz followed by a
// 38 Hz high-pass), squared and integrated over 400 ms momentary and 3 s
// short-term windows. Integrated loudness gates 400 ms blocks with 75 %
// overlap, first absolutely at -70 LUFS and then relatively at 10 LU below
// the ungated mean.
package loudness
