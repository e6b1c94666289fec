package pass_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design/pass"
)

func ExampleButterworthBP() {
	sections := pass.ButterworthBP(200, 1000, 2, 44100)
	chain := biquad.NewChain(sections)

	fmt.Printf("sections=%d order=%d\n", len(sections), chain.Order())
	fmt.Printf("200 Hz: %.2f dB\n", chain.MagnitudeDB(200, 44100))
	fmt.Printf("1 kHz: %.2f dB\n", chain.MagnitudeDB(1000, 44100))
	// Output:
	// sections=2 order=4
	// 200 Hz: -3.01 dB
	// 1 kHz: -3.01 dB
}
