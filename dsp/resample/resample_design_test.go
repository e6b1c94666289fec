package resample

import (
	"math"
	"testing"
)

func TestDesignPrototypePhasesHaveUnitDCGain(t *testing.T) {
	for _, ratio := range [][2]int{{2, 1}, {3, 2}, {160, 147}} {
		up, down := ratio[0], ratio[1]
		taps, err := designPrototype(up, down, newConfig(nil))
		if err != nil {
			t.Fatal(err)
		}
		if len(taps)%2 != 1 {
			t.Fatalf("%d/%d: even tap count %d", up, down, len(taps))
		}

		for p := range up {
			sum := 0.0
			for i := p; i < len(taps); i += up {
				sum += taps[i]
			}
			if math.Abs(sum-1) > 1e-2 {
				t.Fatalf("%d/%d: phase %d DC gain %v", up, down, p, sum)
			}
		}
	}
}

func TestApproximateRatio(t *testing.T) {
	tests := []struct {
		v        float64
		maxDen   int
		num, den int
	}{
		{v: 1.5, maxDen: 100, num: 3, den: 2},
		{v: math.Pi, maxDen: 30, num: 22, den: 7},
		{v: -1, maxDen: 10, num: 1, den: 1},
	}

	for _, tt := range tests {
		num, den := approximateRatio(tt.v, tt.maxDen)
		if num != tt.num || den != tt.den {
			t.Fatalf("approximateRatio(%v,%d) = %d/%d, want %d/%d", tt.v, tt.maxDen, num, den, tt.num, tt.den)
		}
	}
}

func TestKaiserWindowSymmetric(t *testing.T) {
	const n = 33
	for i := range n {
		if d := math.Abs(kaiserWindow(i, n, 7.5) - kaiserWindow(n-1-i, n, 7.5)); d > 1e-15 {
			t.Fatalf("window asymmetric at %d", i)
		}
	}
	if w := kaiserWindow(16, n, 7.5); math.Abs(w-1) > 1e-15 {
		t.Fatalf("window centre = %v, want 1", w)
	}
}
