package audioio

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/dither"
)

// EncodeFile writes w to path as mono 16-bit PCM WAV, replacing any
// existing file. opts configure the quantizer as for [WriteWAV16].
func EncodeFile(path string, w core.Waveform, opts ...dither.Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audioio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("audioio: %w", cerr)
		}
	}()

	return WriteWAV16(f, w, opts...)
}
