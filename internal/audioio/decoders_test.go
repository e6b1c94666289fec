package audioio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

type mockMP3 struct {
	r          *bytes.Reader
	sampleRate int
}

func (m *mockMP3) Read(p []byte) (int, error) { return m.r.Read(p) }
func (m *mockMP3) SampleRate() int            { return m.sampleRate }

func TestDecodeMP3(t *testing.T) {
	pcm := []int16{16384, -16384, 0, 32767, -32768, 8192}
	raw := make([]byte, 2*len(pcm))
	for i, v := range pcm {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(v))
	}

	clip, err := decodeMP3(&mockMP3{r: bytes.NewReader(raw), sampleRate: 44100})
	if err != nil {
		t.Fatalf("decodeMP3: %v", err)
	}

	if clip.SampleRate != 44100 || clip.Channels() != 2 || clip.Frames() != 3 {
		t.Fatalf("got %d Hz, %d channels, %d frames", clip.SampleRate, clip.Channels(), clip.Frames())
	}
	testutil.RequireSliceNearlyEqual(t, clip.Samples[0], []float64{0.5, 0, -1}, 0)
	testutil.RequireSliceNearlyEqual(t, clip.Samples[1], []float64{-0.5, 32767.0 / 32768, 0.25}, 0)
}

type mockOgg struct {
	data       []float32
	channels   int
	sampleRate int
	fail       error
}

func (m *mockOgg) SampleRate() int { return m.sampleRate }
func (m *mockOgg) Channels() int   { return m.channels }

func (m *mockOgg) Read(p []float32) (int, error) {
	if m.fail != nil {
		return 0, m.fail
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.data)
	m.data = m.data[n:]
	return n, nil
}

func TestDecodeVorbis(t *testing.T) {
	data := make([]float32, 2*5000)
	for i := range data {
		if i%2 == 0 {
			data[i] = 0.25
		} else {
			data[i] = -0.5
		}
	}

	clip, err := decodeVorbis(&mockOgg{data: data, channels: 2, sampleRate: 48000})
	if err != nil {
		t.Fatalf("decodeVorbis: %v", err)
	}

	if clip.SampleRate != 48000 || clip.Channels() != 2 || clip.Frames() != 5000 {
		t.Fatalf("got %d Hz, %d channels, %d frames", clip.SampleRate, clip.Channels(), clip.Frames())
	}
	if clip.Samples[0][4999] != 0.25 || clip.Samples[1][0] != -0.5 {
		t.Fatalf("channel data mixed up")
	}
}

func TestDecodeVorbisErrors(t *testing.T) {
	if _, err := decodeVorbis(&mockOgg{channels: 0}); !errors.Is(err, ErrInvalidStream) {
		t.Errorf("zero channels: got %v", err)
	}

	boom := errors.New("boom")
	if _, err := decodeVorbis(&mockOgg{channels: 1, fail: boom}); !errors.Is(err, boom) {
		t.Errorf("read failure: got %v", err)
	}
}

func TestDecodersRejectGarbage(t *testing.T) {
	garbage := []byte("this is neither mpeg nor ogg")

	if _, err := (MP3Decoder{}).Decode(bytes.NewReader(garbage)); err == nil {
		t.Error("MP3Decoder accepted garbage")
	}
	if _, err := (VorbisDecoder{}).Decode(bytes.NewReader(garbage)); !errors.Is(err, ErrInvalidStream) {
		t.Errorf("VorbisDecoder: got %v, want ErrInvalidStream", err)
	}
}
