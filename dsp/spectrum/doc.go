// Package spectrum provides FFT power spectra and band-energy analysis of
// waveforms.
//
// [Analyze] computes the one-sided power spectrum of a whole waveform with a
// single zero-padded FFT. Bin powers are scaled so that summing every bin
// gives the waveform's time-domain energy, which makes [PowerSpectrum.BandEnergy]
// directly comparable between signals of different lengths.
package spectrum
