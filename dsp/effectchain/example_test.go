package effectchain_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
)

func ExampleChain_Process() {
	w := core.NewWaveform([]float64{0, 0.2, -0.4, 0.1}, 8000)

	s := effectchain.DefaultSettings()
	s.GainDB = 20

	res, err := effectchain.New().Process(w, s)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Applied)
	fmt.Printf("%.2f\n", res.Waveform.Peak())
	// Output:
	// [gain limiter final-clip]
	// 1.00
}

func ExampleParseRequest() {
	req, err := effectchain.ParseRequest([]byte(`{"normalize": true, "low_pass_cutoff": 0, "band_low": 200, "band_high": 1000}`))
	if err != nil {
		panic(err)
	}

	fmt.Println(req.Normalize, req.LowPassCutoff == nil, *req.BandLow, *req.BandHigh)
	// Output: true true 200 1000
}
