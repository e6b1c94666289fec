package reverb

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestApplyLength(t *testing.T) {
	tests := []struct {
		name   string
		signal int
		ir     int
	}{
		{"short IR", 100, 8},
		{"direct threshold", 100, conv.DirectThreshold},
		{"long IR", 300, 2000},
		{"single sample signal", 1, 500},
		{"single tap IR", 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := core.NewWaveform(testutil.DeterministicNoise(1, 0.5, tt.signal), 8000)
			ir := core.NewWaveform(testutil.DeterministicNoise(2, 0.5, tt.ir), 8000)

			out, err := Apply(w, ir)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}

			if want := tt.signal + tt.ir - 1; out.Len() != want {
				t.Fatalf("len = %d, want %d", out.Len(), want)
			}

			if out.SampleRate != 8000 {
				t.Fatalf("sample rate = %d, want 8000", out.SampleRate)
			}
		})
	}
}

func TestApplyMatchesDirect(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 700)
	h := testutil.DeterministicNoise(4, 0.2, 900)

	want, err := conv.Direct(x, h)
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}

	out, err := Apply(core.NewWaveform(x, 44100), core.NewWaveform(h, 44100))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out.Samples, want, 1e-9)
}

func TestApplyImpulseIdentity(t *testing.T) {
	x := testutil.DeterministicSine(440, 8000, 0.5, 64)
	out, err := Apply(core.NewWaveform(x, 8000), core.NewWaveform([]float64{1}, 8000))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out.Samples, x, 1e-15)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 200)
	orig := append([]float64(nil), x...)
	h := testutil.DeterministicNoise(6, 1, 100)

	if _, err := Apply(core.Waveform{Samples: x, SampleRate: 1000}, core.NewWaveform(h, 1000)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestApplyEmptySignal(t *testing.T) {
	out, err := Apply(core.NewWaveform(nil, 8000), core.NewWaveform([]float64{1, 0.5}, 8000))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("len = %d, want 0", out.Len())
	}
}

func TestApplyErrors(t *testing.T) {
	w := core.NewWaveform([]float64{1, 2, 3}, 8000)

	if _, err := Apply(w, core.NewWaveform(nil, 8000)); !errors.Is(err, ErrEmptyIR) {
		t.Errorf("empty IR: got %v, want ErrEmptyIR", err)
	}

	if _, err := Apply(w, core.NewWaveform([]float64{1}, 16000)); !errors.Is(err, ErrSampleRateMismatch) {
		t.Errorf("rate mismatch: got %v, want ErrSampleRateMismatch", err)
	}

	if _, err := Apply(w, core.NewWaveform([]float64{1}, 0)); !errors.Is(err, core.ErrInvalidSampleRate) {
		t.Errorf("zero rate IR: got %v, want ErrInvalidSampleRate", err)
	}
}

func TestConvolutionReverbReuse(t *testing.T) {
	ir := core.NewWaveform(testutil.DeterministicNoise(7, 0.3, 256), 8000)
	r, err := NewConvolutionReverb(ir)
	if err != nil {
		t.Fatalf("NewConvolutionReverb: %v", err)
	}

	if r.IRLen() != 256 {
		t.Fatalf("IRLen = %d, want 256", r.IRLen())
	}

	w := core.NewWaveform(testutil.DeterministicNoise(8, 1, 500), 8000)
	first, err := r.Process(w)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	second, err := r.Process(w)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, second.Samples, first.Samples, 0)
}
