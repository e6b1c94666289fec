package loudness

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
)

const (
	momentaryDuration = 0.4
	shortTermDuration = 3.0

	absThreshold = -70.0
	relThreshold = -10.0
	blockOverlap = 0.75

	// Floor is reported for windows with zero energy.
	Floor = -120.0
)

// window is a running sum of squares over a fixed number of samples.
type window struct {
	history []float64
	pos     int
	sum     float64
}

func newWindow(n int) window {
	return window{history: make([]float64, n)}
}

func (w *window) push(sq float64) {
	w.sum += sq - w.history[w.pos]
	// Rounding can leave a tiny negative residue after long silence.
	w.sum = max(w.sum, 0)
	w.history[w.pos] = sq
	w.pos = (w.pos + 1) % len(w.history)
}

func (w *window) meanSquare() float64 {
	return w.sum / float64(len(w.history))
}

func (w *window) reset() {
	clear(w.history)
	w.pos = 0
	w.sum = 0
}

// Meter is a streaming mono loudness meter. It is not safe for concurrent
// use.
type Meter struct {
	sampleRate float64
	weighting  *biquad.Chain

	momentary window
	shortTerm window

	step      int
	sinceStep int
	total     int

	blocks       []float64
	maxMomentary float64
	peak         float64
}

// NewMeter creates a meter for signals at sampleRate.
func NewMeter(sampleRate float64) (*Meter, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("loudness: %w: %v", core.ErrInvalidSampleRate, sampleRate)
	}

	m := &Meter{
		sampleRate: sampleRate,
		weighting:  biquad.NewChain(kWeighting(sampleRate)),
		momentary:  newWindow(max(int(math.Round(momentaryDuration*sampleRate)), 1)),
		shortTerm:  newWindow(max(int(math.Round(shortTermDuration*sampleRate)), 1)),
		step:       max(int(math.Round(momentaryDuration*(1-blockOverlap)*sampleRate)), 1),
	}
	m.Reset()

	return m, nil
}

// SampleRate returns the rate the meter was built for.
func (m *Meter) SampleRate() float64 { return m.sampleRate }

// Reset clears all filter and integration state.
func (m *Meter) Reset() {
	m.weighting.Reset()
	m.momentary.reset()
	m.shortTerm.reset()
	m.sinceStep = 0
	m.total = 0
	m.blocks = m.blocks[:0]
	m.maxMomentary = math.Inf(-1)
	m.peak = 0
}

// ProcessSample feeds one sample.
func (m *Meter) ProcessSample(x float64) {
	m.peak = max(m.peak, math.Abs(x))

	y := m.weighting.ProcessSample(x)
	sq := y * y
	m.momentary.push(sq)
	m.shortTerm.push(sq)
	m.total++

	// Gating blocks start once the first 400 ms window is full.
	full := len(m.momentary.history)
	if m.total < full {
		return
	}

	if m.total > full {
		m.sinceStep++
		if m.sinceStep < m.step {
			return
		}
	}
	m.sinceStep = 0

	ms := m.momentary.meanSquare()
	m.blocks = append(m.blocks, ms)
	m.maxMomentary = max(m.maxMomentary, toLUFS(ms))
}

// ProcessBlock feeds a block of samples.
func (m *Meter) ProcessBlock(block []float64) {
	for _, x := range block {
		m.ProcessSample(x)
	}
}

// Momentary returns the loudness of the last 400 ms in LUFS.
func (m *Meter) Momentary() float64 { return toLUFS(m.momentary.meanSquare()) }

// ShortTerm returns the loudness of the last 3 s in LUFS.
func (m *Meter) ShortTerm() float64 { return toLUFS(m.shortTerm.meanSquare()) }

// MaxMomentary returns the highest gating-block loudness seen, or -Inf
// before the first full 400 ms.
func (m *Meter) MaxMomentary() float64 { return m.maxMomentary }

// Peak returns the largest absolute sample value seen.
func (m *Meter) Peak() float64 { return m.peak }

// Integrated returns the gated integrated loudness in LUFS, or -Inf when
// no block passes the gates.
func (m *Meter) Integrated() float64 {
	var (
		sum   float64
		count int
	)

	for _, b := range m.blocks {
		if toLUFS(b) > absThreshold {
			sum += b
			count++
		}
	}

	if count == 0 {
		return math.Inf(-1)
	}

	gate := toLUFS(sum/float64(count)) + relThreshold
	sum, count = 0, 0

	for _, b := range m.blocks {
		if l := toLUFS(b); l > absThreshold && l > gate {
			sum += b
			count++
		}
	}

	if count == 0 {
		return math.Inf(-1)
	}

	return toLUFS(sum / float64(count))
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return Floor
	}

	return -0.691 + 10*math.Log10(meanSquare)
}
