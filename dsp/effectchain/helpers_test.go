package effectchain

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/signal"
)

func newTestChain(t *testing.T, opts ...Option) (*Chain, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts = append([]Option{WithLogger(logger), WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return New(opts...), hook
}

func sine(t *testing.T, freq, amp float64, sampleRate, n int) core.Waveform {
	t.Helper()

	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(sampleRate)})
	w, err := g.Sine(freq, amp, n)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}
	return w
}

func noise(t *testing.T, seed uint64, sampleRate, n int) core.Waveform {
	t.Helper()

	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(sampleRate)}, signal.WithSeed(seed))
	w, err := g.WhiteNoise(0.5, n)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}
	return w
}

func mustProcess(t *testing.T, c *Chain, w core.Waveform, s Settings) Result {
	t.Helper()

	res, err := c.Process(w, s)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return res
}
