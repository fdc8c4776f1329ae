package audio

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pthm-cable/spectrogrid/config"
)

// Tone is one sine partial of a ToneSource.
type Tone struct {
	Frequency float64 // Hz at t=0
	Amplitude float64
	Sweep     float64 // Hz per second
}

// ToneSource synthesizes a sum of sines with optional white noise.
// It never ends.
type ToneSource struct {
	rate  int
	tones []Tone
	phase []float64
	noise float64
	rng   *rand.Rand
	n     int64 // samples produced so far
}

// NewToneSource creates a tone source. seed drives the noise generator.
func NewToneSource(rate int, tones []Tone, noise float64, seed int64) *ToneSource {
	return &ToneSource{
		rate:  rate,
		tones: tones,
		phase: make([]float64, len(tones)),
		noise: noise,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// SampleRate implements Source.
func (s *ToneSource) SampleRate() int { return s.rate }

// Read implements Source.
func (s *ToneSource) Read(dst []float64) (int, error) {
	dt := 1 / float64(s.rate)
	for i := range dst {
		t := float64(s.n) * dt
		var v float64
		for j, tone := range s.tones {
			freq := tone.Frequency + tone.Sweep*t
			// Sweeps fold back into the audible range
			nyquist := float64(s.rate) / 2
			freq = math.Abs(math.Mod(freq, nyquist))
			s.phase[j] += 2 * math.Pi * freq * dt
			if s.phase[j] > 2*math.Pi {
				s.phase[j] -= 2 * math.Pi
			}
			v += tone.Amplitude * math.Sin(s.phase[j])
		}
		if s.noise > 0 {
			v += (s.rng.Float64()*2 - 1) * s.noise
		}
		dst[i] = v
		s.n++
	}
	return len(dst), nil
}

// SilenceSource produces zeros. Useful for exercising the log-of-zero path.
type SilenceSource struct {
	Rate int
}

// SampleRate implements Source.
func (s SilenceSource) SampleRate() int { return s.Rate }

// Read implements Source.
func (s SilenceSource) Read(dst []float64) (int, error) {
	clear(dst)
	return len(dst), nil
}

// WAVSource plays back a decoded WAV file as mono samples.
type WAVSource struct {
	samples []float64
	rate    int
	pos     int
	loop    bool
}

// OpenWAV decodes the whole file at path into memory, downmixing to mono.
func OpenWAV(path string, loop bool) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wav: %w", err)
	}
	defer f.Close()

	src, err := DecodeWAV(f, loop)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("loaded wav",
		"path", path,
		"sample_rate", src.rate,
		"seconds", float64(len(src.samples))/float64(src.rate),
	)
	return src, nil
}

// DecodeWAV decodes a WAV stream into a WAVSource.
func DecodeWAV(r io.ReadSeeker, loop bool) (*WAVSource, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrNotWAV
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding pcm: %w", err)
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		return nil, fmt.Errorf("%w: unknown bit depth", ErrNotWAV)
	}

	return &WAVSource{
		samples: downmix(buf, bitDepth),
		rate:    buf.Format.SampleRate,
		loop:    loop,
	}, nil
}

// downmix averages interleaved channels and scales to [-1, 1].
func downmix(buf *goaudio.IntBuffer, bitDepth int) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	factor := math.Pow(2, float64(bitDepth-1))
	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := range out {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) / factor
	}
	return out
}

// SampleRate implements Source.
func (s *WAVSource) SampleRate() int { return s.rate }

// Len returns the number of mono frames in the file.
func (s *WAVSource) Len() int { return len(s.samples) }

// Read implements Source. Looping sources wrap at the end of the file;
// others return io.EOF with the final partial read.
func (s *WAVSource) Read(dst []float64) (int, error) {
	if len(s.samples) == 0 {
		return 0, io.EOF
	}
	n := 0
	for n < len(dst) {
		if s.pos >= len(s.samples) {
			if !s.loop {
				return n, io.EOF
			}
			s.pos = 0
		}
		c := copy(dst[n:], s.samples[s.pos:])
		n += c
		s.pos += c
	}
	return n, nil
}

// FromConfig builds the configured source: the WAV file when one is set,
// the tone source otherwise.
func FromConfig(cfg config.AudioConfig, seed int64) (Source, error) {
	if cfg.File != "" {
		src, err := OpenWAV(cfg.File, cfg.Loop)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	tones := make([]Tone, len(cfg.Tones))
	for i, t := range cfg.Tones {
		tones[i] = Tone{Frequency: t.Frequency, Amplitude: t.Amplitude, Sweep: t.Sweep}
	}
	return NewToneSource(cfg.SampleRate, tones, cfg.Noise, seed), nil
}
