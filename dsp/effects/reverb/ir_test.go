package reverb

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestSynthesizeIRDefaults(t *testing.T) {
	const sr = 8000

	ir, err := SynthesizeIR(sr, WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("SynthesizeIR: %v", err)
	}

	if want := int(sr * DefaultLength); ir.Len() != want {
		t.Fatalf("len = %d, want %d", ir.Len(), want)
	}

	if ir.SampleRate != sr {
		t.Fatalf("sample rate = %d, want %d", ir.SampleRate, sr)
	}

	for i, v := range ir.Samples {
		env := math.Exp(-DefaultDecay * float64(i) / sr)
		lo := DefaultNoiseMin*env - 1e-12
		hi := DefaultNoiseMax*env + 1e-12
		if v < lo || v > hi {
			t.Fatalf("ir[%d] = %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}

func TestSynthesizeIRPinnedNoise(t *testing.T) {
	const sr = 1000

	// 0.5 maps to the middle of [0.9, 1.1].
	ir, err := SynthesizeIR(sr, WithLength(0.01), WithDecay(2), WithRand(constRand(0.5)))
	if err != nil {
		t.Fatalf("SynthesizeIR: %v", err)
	}

	if ir.Len() != 10 {
		t.Fatalf("len = %d, want 10", ir.Len())
	}

	for i, v := range ir.Samples {
		want := math.Exp(-2 * float64(i) / sr)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("ir[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestSynthesizeIRSeededIsReproducible(t *testing.T) {
	a, err := SynthesizeIR(4000, WithRand(rand.New(rand.NewPCG(9, 9))))
	if err != nil {
		t.Fatal(err)
	}

	b, err := SynthesizeIR(4000, WithRand(rand.New(rand.NewPCG(9, 9))))
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a.Samples[i], b.Samples[i])
		}
	}
}

func TestSynthesizeIRDecayEnvelope(t *testing.T) {
	ir, err := SynthesizeIR(1000, WithDecay(5), WithNoiseRange(1, 1))
	if err != nil {
		t.Fatalf("SynthesizeIR: %v", err)
	}

	if ir.Samples[0] != 1 {
		t.Fatalf("ir[0] = %v, want 1", ir.Samples[0])
	}

	last := ir.Samples[ir.Len()-1]
	if want := math.Exp(-5 * float64(ir.Len()-1) / 1000); math.Abs(last-want) > 1e-12 {
		t.Fatalf("tail = %v, want %v", last, want)
	}
}

func TestSynthesizeIRInvalid(t *testing.T) {
	tests := []struct {
		name string
		sr   int
		opts []IROption
	}{
		{"zero rate", 0, nil},
		{"negative rate", -8000, nil},
		{"zero length", 8000, []IROption{WithLength(0)}},
		{"NaN length", 8000, []IROption{WithLength(math.NaN())}},
		{"sub-sample length", 8000, []IROption{WithLength(1e-6)}},
		{"negative decay", 8000, []IROption{WithDecay(-1)}},
		{"inverted noise range", 8000, []IROption{WithNoiseRange(1.1, 0.9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SynthesizeIR(tt.sr, tt.opts...); !errors.Is(err, ErrInvalidIRParams) {
				t.Fatalf("got %v, want ErrInvalidIRParams", err)
			}
		})
	}
}
