package ir_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/measure/ir"
)

func ExampleAnalyze() {
	// An impulse followed by one reflection 100 ms later at half
	// amplitude: 4/5 of the energy arrives before 80 ms.
	h := make([]float64, 200)
	h[0], h[100] = 1, 0.5

	m, err := ir.Analyze(core.NewWaveform(h, 1000))
	if err != nil {
		panic(err)
	}

	fmt.Printf("C80 %.2f dB, D50 %.1f\n", m.C80, m.D50)
	// Output: C80 6.02 dB, D50 0.8
}
