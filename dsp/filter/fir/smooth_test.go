package fir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestMovingAverage(t *testing.T) {
	if MovingAverage(0) != nil {
		t.Fatal("MovingAverage(0) should be nil")
	}

	k := MovingAverage(5)
	sum := 0.0
	for _, v := range k {
		sum += v
	}
	if len(k) != 5 || math.Abs(sum-1) > 1e-12 {
		t.Fatalf("MovingAverage(5) = %v", k)
	}
}

func TestSmoothIdentity(t *testing.T) {
	in := core.NewWaveform(testutil.DeterministicNoise(7, 0.8, 257), 44100)

	out, err := Smooth(in, 1)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, out.Samples, in.Samples, 0)
	out.Samples[0] = 42
	if in.Samples[0] == 42 {
		t.Fatal("Smooth(w, 1) aliases the input")
	}
}

func TestSmoothInvalidKernel(t *testing.T) {
	for _, k := range []int{0, -3} {
		_, err := Smooth(core.NewWaveform([]float64{1}, 8000), k)
		if !errors.Is(err, ErrInvalidKernelSize) {
			t.Fatalf("k=%d: got %v, want ErrInvalidKernelSize", k, err)
		}
	}
}

func TestSmoothPreservesLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 500} {
		for _, k := range []int{2, 3, 8, 65, 1000} {
			in := core.NewWaveform(testutil.DeterministicNoise(int64(n+k), 1, n), 22050)

			out, err := Smooth(in, k)
			if err != nil {
				t.Fatalf("n=%d k=%d: %v", n, k, err)
			}
			if out.Len() != n || out.SampleRate != 22050 {
				t.Fatalf("n=%d k=%d: len=%d rate=%d", n, k, out.Len(), out.SampleRate)
			}
		}
	}
}

func TestSmoothEdgesAndInterior(t *testing.T) {
	in := core.NewWaveform([]float64{3, 3, 3, 3, 3, 3}, 8000)

	out, err := Smooth(in, 3)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{2, 3, 3, 3, 3, 2}
	testutil.RequireSliceNearlyEqual(t, out.Samples, want, 1e-12)
}

func TestSmoothMatchesDelayedCausalFilter(t *testing.T) {
	const k = 5
	x := testutil.DeterministicNoise(11, 1, 64)

	out, err := Smooth(core.NewWaveform(x, 8000), k)
	if err != nil {
		t.Fatal(err)
	}

	f := New(MovingAverage(k))
	delay := (k - 1) / 2
	causal := make([]float64, len(x)+delay)
	copy(causal, x)
	f.ProcessBlock(causal)

	testutil.RequireSliceNearlyEqual(t, out.Samples, causal[delay:], 1e-12)
}

func TestSmoothAttenuatesHighFrequencies(t *testing.T) {
	const n = 4096
	nyquist := make([]float64, n)
	for i := range nyquist {
		nyquist[i] = math.Cos(math.Pi * float64(i))
	}

	prev := math.Inf(1)
	for _, k := range []int{2, 4, 8} {
		out, err := Smooth(core.NewWaveform(nyquist, 44100), k)
		if err != nil {
			t.Fatal(err)
		}

		interior := core.PeakAbs(out.Samples[k : n-k])
		if interior > prev+1e-12 {
			t.Fatalf("k=%d: interior peak %v not below %v", k, interior, prev)
		}
		prev = interior
	}

	if prev > 1e-9 {
		t.Fatalf("even-length box filter should null Nyquist, got %v", prev)
	}
}
