package audioio

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader used here.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

// Decode reads the whole stream.
func (VorbisDecoder) Decode(r io.Reader) (*Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	return decodeVorbis(dec)
}

func decodeVorbis(dec oggReader) (*Clip, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidStream, channels)
	}

	buf := make([]float32, 4096*channels)
	var interleaved []float64
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			interleaved = append(interleaved, float64(v))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
		}
		if n == 0 {
			break
		}
	}

	return &Clip{
		Samples:    deinterleave(interleaved, channels),
		SampleRate: dec.SampleRate(),
	}, nil
}
