package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

func ExampleButterworth() {
	coeffs, err := design.Butterworth(design.Lowpass, 4, 48000, 1000)
	if err != nil {
		fmt.Println(err)
		return
	}

	chain := coeffs.Chain()

	fmt.Printf("sections=%d order=%d\n", len(coeffs.Sections), chain.Order())
	fmt.Printf("100 Hz:   %.2f dB\n", chain.MagnitudeDB(100, 48000))
	fmt.Printf("1000 Hz:  %.2f dB\n", chain.MagnitudeDB(1000, 48000))
	fmt.Printf("10000 Hz: %.2f dB\n", chain.MagnitudeDB(10000, 48000))
	// Output:
	// sections=2 order=4
	// 100 Hz:   -0.00 dB
	// 1000 Hz:  -3.01 dB
	// 10000 Hz: -85.48 dB
}

func ExampleCoefficients_TransferFunction() {
	coeffs, _ := design.Butterworth(design.Bandpass, 2, 44100, 200, 1000)

	b, a := coeffs.TransferFunction()

	fmt.Println(len(b), len(a))
	// Output:
	// 5 5
}
