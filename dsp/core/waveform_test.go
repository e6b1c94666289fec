package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewWaveformCopies(t *testing.T) {
	src := []float64{1, 2, 3}
	w := NewWaveform(src, 8000)
	src[0] = 99

	if w.Samples[0] != 1 {
		t.Fatalf("waveform aliases caller slice: %v", w.Samples)
	}
	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", w.Len())
	}
}

func TestWaveformClone(t *testing.T) {
	w := NewWaveform([]float64{0.5, -0.25}, 48000)
	c := w.Clone()
	c.Samples[0] = 0

	if w.Samples[0] != 0.5 {
		t.Fatal("Clone shares storage with the original")
	}
	if c.SampleRate != 48000 {
		t.Fatalf("SampleRate = %d, want 48000", c.SampleRate)
	}
}

func TestWaveformDuration(t *testing.T) {
	w := Waveform{Samples: make([]float64, 22050), SampleRate: 44100}
	if got := w.Duration(); got != 500*time.Millisecond {
		t.Fatalf("Duration() = %v, want 500ms", got)
	}
	if got := (Waveform{Samples: make([]float64, 10)}).Duration(); got != 0 {
		t.Fatalf("Duration() without rate = %v, want 0", got)
	}
}

func TestWaveformValidate(t *testing.T) {
	tests := []struct {
		name string
		w    Waveform
		want error
	}{
		{name: "ok", w: Waveform{Samples: []float64{0, 1}, SampleRate: 44100}},
		{name: "empty", w: Waveform{SampleRate: 44100}},
		{name: "zero rate", w: Waveform{Samples: []float64{0}}, want: ErrInvalidSampleRate},
		{name: "nan", w: Waveform{Samples: []float64{0, math.NaN()}, SampleRate: 8000}, want: ErrNonFinite},
		{name: "inf", w: Waveform{Samples: []float64{math.Inf(-1)}, SampleRate: 8000}, want: ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
