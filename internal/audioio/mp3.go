package audioio

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is the part of gomp3.Decoder used here.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// mp3Channels is fixed: go-mp3 always emits 16-bit little-endian stereo.
const mp3Channels = 2

// MP3Decoder decodes MPEG-1/2 Layer III streams.
type MP3Decoder struct{}

// Decode reads the whole stream.
func (MP3Decoder) Decode(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	return decodeMP3(dec)
}

func decodeMP3(dec mp3Reader) (*Clip, error) {
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return &Clip{
		Samples:    deinterleave(samples, mp3Channels),
		SampleRate: dec.SampleRate(),
	}, nil
}
