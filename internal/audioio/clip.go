package audioio

import (
	"errors"
	"io"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Errors returned by decoders and the registry.
var (
	ErrUnsupportedFormat = errors.New("audioio: unsupported format")
	ErrInvalidStream     = errors.New("audioio: invalid audio stream")
)

// Clip is a decoded multichannel recording. Samples is channel-major:
// Samples[ch][frame], each channel of equal length, values in [-1, 1].
type Clip struct {
	Samples    [][]float64
	SampleRate int
}

// Channels returns the number of channels.
func (c *Clip) Channels() int { return len(c.Samples) }

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Samples) == 0 {
		return 0
	}
	return len(c.Samples[0])
}

// Mono averages all channels into a single waveform of Frames() samples.
func (c *Clip) Mono() core.Waveform {
	out := make([]float64, c.Frames())
	if len(c.Samples) > 0 {
		for _, ch := range c.Samples {
			for i := range out {
				out[i] += ch[i]
			}
		}
		inv := 1 / float64(len(c.Samples))
		for i := range out {
			out[i] *= inv
		}
	}
	return core.Waveform{Samples: out, SampleRate: c.SampleRate}
}

// Decoder turns an encoded stream into a Clip.
type Decoder interface {
	Decode(r io.Reader) (*Clip, error)
}

// ToMono averages a two-dimensional sample array of unknown layout down to
// one channel. Use [Clip.Mono] for decoded clips.
//
// The longer axis is taken as time, so both channel-major
// data[channel][frame] and frame-major data[frame][channel] layouts are
// accepted. When both axes have the same length the outer index is taken as
// time. Rows must be of equal length.
func ToMono(data [][]float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	rows, cols := len(data), len(data[0])
	if rows == 1 {
		return append([]float64(nil), data[0]...)
	}

	if rows >= cols {
		// frame-major
		out := make([]float64, rows)
		for i, frame := range data {
			sum := 0.0
			for _, v := range frame {
				sum += v
			}
			if cols > 0 {
				out[i] = sum / float64(cols)
			}
		}
		return out
	}

	out := make([]float64, cols)
	for _, ch := range data {
		for i, v := range ch {
			out[i] += v
		}
	}
	inv := 1 / float64(rows)
	for i := range out {
		out[i] *= inv
	}
	return out
}

// deinterleave splits interleaved samples into channel-major slices,
// dropping a trailing partial frame.
func deinterleave(data []float64, channels int) [][]float64 {
	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for f := range frames {
		for ch := range channels {
			out[ch][f] = data[f*channels+ch]
		}
	}
	return out
}
