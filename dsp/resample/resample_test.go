package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

func TestNewRationalValidation(t *testing.T) {
	for _, r := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		if _, err := NewRational(r[0], r[1]); !errors.Is(err, ErrInvalidRatio) {
			t.Fatalf("%d/%d: got %v, want ErrInvalidRatio", r[0], r[1], err)
		}
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}
	if up, down := r.Ratio(); up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestNewForRates(t *testing.T) {
	tests := []struct {
		in, out  int
		up, down int
	}{
		{in: 44100, out: 48000, up: 160, down: 147},
		{in: 48000, out: 44100, up: 147, down: 160},
		{in: 22050, out: 44100, up: 2, down: 1},
		{in: 96000, out: 48000, up: 1, down: 2},
	}

	for _, tt := range tests {
		r, err := NewForRates(tt.in, tt.out)
		if err != nil {
			t.Fatalf("%d->%d: %v", tt.in, tt.out, err)
		}
		if up, down := r.Ratio(); up != tt.up || down != tt.down {
			t.Fatalf("%d->%d: ratio %d/%d, want %d/%d", tt.in, tt.out, up, down, tt.up, tt.down)
		}
	}

	if _, err := NewForRates(0, 44100); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("got %v, want ErrInvalidRate", err)
	}
}

func TestNewForRatesApproximatesLargeRatios(t *testing.T) {
	r, err := NewForRates(44100, 48000, WithMaxDenominator(100))
	if err != nil {
		t.Fatal(err)
	}

	up, down := r.Ratio()
	if up > 100 || down > 100 {
		t.Fatalf("ratio %d/%d exceeds max denominator", up, down)
	}
	if got := float64(up) / float64(down); math.Abs(got-48000.0/44100) > 1e-3 {
		t.Fatalf("ratio %v too far from %v", got, 48000.0/44100)
	}
}

func TestOutputLen(t *testing.T) {
	r, err := NewRational(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{0, 1, 2, 3, 257} {
		want := int(math.Ceil(float64(n) * 3 / 2))
		if got := len(r.Process(make([]float64, n))); got != want || r.OutputLen(n) != want {
			t.Fatalf("n=%d: len=%d OutputLen=%d, want %d", n, got, r.OutputLen(n), want)
		}
	}
}

func TestQualityModesPassbandAndStopband(t *testing.T) {
	tests := []struct {
		name          string
		quality       Quality
		maxPassbandDB float64
		minStopbandDB float64
	}{
		{name: "fast", quality: QualityFast, maxPassbandDB: 0.7, minStopbandDB: 20},
		{name: "balanced", quality: QualityBalanced, maxPassbandDB: 0.35, minStopbandDB: 35},
		{name: "best", quality: QualityBest, maxPassbandDB: 0.2, minStopbandDB: 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inPass := sine(2000, 48000, 32768)
			inStop := sine(17000, 48000, 32768)

			outPass, err := Resample(inPass, 1, 2, WithQuality(tc.quality))
			if err != nil {
				t.Fatal(err)
			}
			outStop, err := Resample(inStop, 1, 2, WithQuality(tc.quality))
			if err != nil {
				t.Fatal(err)
			}

			passDB := math.Abs(dbRatio(rms(outPass[2048:14336]), rms(inPass[4096:28672])))
			if passDB > tc.maxPassbandDB {
				t.Fatalf("passband droop %.2f dB > %.2f dB", passDB, tc.maxPassbandDB)
			}

			stopDB := -dbRatio(rms(outStop[2048:14336]), rms(inStop[4096:28672]))
			if stopDB < tc.minStopbandDB {
				t.Fatalf("stopband attenuation %.2f dB < %.2f dB", stopDB, tc.minStopbandDB)
			}
		})
	}
}

func TestProcessIsDelayCompensated(t *testing.T) {
	in := sine(500, 44100, 4096)

	out, err := Resample(in, 2, 1, WithQuality(QualityBest))
	if err != nil {
		t.Fatal(err)
	}

	for n := 200; n < len(in)-200; n++ {
		if d := math.Abs(out[2*n] - in[n]); d > 1e-3 {
			t.Fatalf("out[%d]=%v in[%d]=%v", 2*n, out[2*n], n, in[n])
		}
	}
}

func TestWaveform(t *testing.T) {
	w := core.NewWaveform(sine(440, 48000, 4800), 48000)

	same, err := Waveform(w, 48000)
	if err != nil {
		t.Fatal(err)
	}
	same.Samples[0] = 5
	if w.Samples[0] == 5 {
		t.Fatal("same-rate Waveform aliases input")
	}

	down, err := Waveform(w, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if down.SampleRate != 44100 || down.Len() != 4410 {
		t.Fatalf("rate=%d len=%d, want 44100/4410", down.SampleRate, down.Len())
	}

	if _, err := Waveform(w, 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("got %v, want ErrInvalidRate", err)
	}
}

func TestWaveformKeepsOnset(t *testing.T) {
	decay := make([]float64, 4800)
	for i := range decay {
		decay[i] = math.Exp(-float64(i) / 400)
	}

	out, err := Waveform(core.NewWaveform(decay, 48000), 44100)
	if err != nil {
		t.Fatal(err)
	}

	peak := 0
	for i, v := range out.Samples {
		if math.Abs(v) > math.Abs(out.Samples[peak]) {
			peak = i
		}
	}
	if peak > 3 {
		t.Fatalf("onset moved to sample %d", peak)
	}
}

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}

func dbRatio(out, in float64) float64 {
	if in == 0 || out == 0 {
		return -300
	}
	return 20 * math.Log10(out/in)
}
