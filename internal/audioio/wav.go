package audioio

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/dither"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// WAVDecoder decodes 8, 16, 24 and 32-bit integer PCM WAV files.
type WAVDecoder struct{}

// Decode reads the whole stream. go-audio/wav needs to seek, so readers
// without io.ReadSeeker are buffered in memory first.
func (WAVDecoder) Decode(r io.Reader) (*Clip, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidStream)
	}

	if f := dec.WavAudioFormat; f != wavFormatPCM && f != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV audio format %d", ErrUnsupportedFormat, f)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	channels := int(dec.NumChans)
	if channels <= 0 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidStream, channels, dec.SampleRate)
	}

	return &Clip{
		Samples:    deinterleave(intToFloat(buf.Data, int(dec.BitDepth)), channels),
		SampleRate: int(dec.SampleRate),
	}, nil
}

// intToFloat scales integer PCM to [-1, 1). 8-bit WAV data is unsigned.
func intToFloat(data []int, bitDepth int) []float64 {
	out := make([]float64, len(data))

	if bitDepth == 8 {
		for i, v := range data {
			out[i] = float64(v-128) / 128
		}
		return out
	}

	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1 / float64(int64(1)<<(bitDepth-1))
	for i, v := range data {
		out[i] = float64(v) * scale
	}
	return out
}

// WriteWAV16 writes w as a mono 16-bit PCM WAV file. Samples are clamped
// to [-1, 1] and quantized with a [dither.Quantizer] built from opts; the
// default rounds to the nearest code.
func WriteWAV16(out io.WriteSeeker, w core.Waveform, opts ...dither.Option) error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("audioio: %w: %d", core.ErrInvalidSampleRate, w.SampleRate)
	}

	q, err := dither.NewQuantizer(append(opts[:len(opts):len(opts)], dither.WithBitDepth(16))...)
	if err != nil {
		return fmt.Errorf("audioio: %w", err)
	}

	enc := wav.NewEncoder(out, w.SampleRate, 16, 1, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: w.SampleRate},
		Data:           make([]int, len(w.Samples)),
		SourceBitDepth: 16,
	}
	q.QuantizeBlock(buf.Data, w.Samples)

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audioio: writing wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audioio: finalizing wav: %w", err)
	}
	return nil
}
