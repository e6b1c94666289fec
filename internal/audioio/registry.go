package audioio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Registry maps lower-case file extensions (".wav") to decoders.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with the WAV, MP3 and Ogg Vorbis
// decoders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".wav", WAVDecoder{})
	r.Register(".wave", WAVDecoder{})
	r.Register(".mp3", MP3Decoder{})
	r.Register(".ogg", VorbisDecoder{})
	r.Register(".oga", VorbisDecoder{})
	return r
}

// Register adds or replaces the decoder for ext.
func (r *Registry) Register(ext string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[normalizeExt(ext)] = d
}

// Get returns the decoder for ext.
func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Extensions lists the registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	return out
}

// DecodeFile decodes the file at path with the decoder registered for its
// extension.
func (r *Registry) DecodeFile(path string) (*Clip, error) {
	ext := filepath.Ext(path)
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audioio: %w", err)
	}
	defer f.Close()

	clip, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audioio: decoding %s: %w", filepath.Base(path), err)
	}
	return clip, nil
}

// LoadMono decodes path and averages it to a mono waveform.
func (r *Registry) LoadMono(path string) (core.Waveform, error) {
	clip, err := r.DecodeFile(path)
	if err != nil {
		return core.Waveform{}, err
	}
	return clip.Mono(), nil
}

// DecodeFile decodes path with the default registry.
func DecodeFile(path string) (*Clip, error) {
	return DefaultRegistry().DecodeFile(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
