// Package audio provides audio sources and the per-frame spectrum analyzer
// that feeds the band reducer.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	// ErrUnknownWindow is returned by ParseWindow for unsupported names.
	ErrUnknownWindow = errors.New("audio: unknown window")
	// ErrSpectrumSize means the destination buffer does not match the analyzer.
	ErrSpectrumSize = errors.New("audio: spectrum buffer size mismatch")
	// ErrNotWAV means the file is not a decodable WAV stream.
	ErrNotWAV = errors.New("audio: not a valid WAV file")
)

// Source produces mono time-domain samples in [-1, 1].
// Read returns io.EOF once a non-looping source is exhausted.
type Source interface {
	Read(dst []float64) (int, error)
	SampleRate() int
}

// Analyzer turns a Source into magnitude spectra, one per frame.
// It keeps a history of 2*bins samples and runs a real FFT of that size,
// writing the first bins magnitudes (DC up to just below Nyquist).
type Analyzer struct {
	src      Source
	win      Window
	bins     int
	hop      int
	gain     float64
	fft      *fourier.FFT
	hist     []float64
	frame    []float64
	coeff    []complex128
	incoming []float64
	ended    bool
}

// NewAnalyzer creates an analyzer that advances the source by sampleRate/fps
// samples on every Spectrum call.
func NewAnalyzer(src Source, win Window, bins, fps int) *Analyzer {
	n := 2 * bins
	hop := src.SampleRate() / fps
	if hop < 1 {
		hop = 1
	}
	return &Analyzer{
		src:      src,
		win:      win,
		bins:     bins,
		hop:      hop,
		gain:     win.coherentGain(n),
		fft:      fourier.NewFFT(n),
		hist:     make([]float64, n),
		frame:    make([]float64, n),
		coeff:    make([]complex128, n/2+1),
		incoming: make([]float64, hop),
	}
}

// Bins returns the number of magnitudes produced per frame.
func (a *Analyzer) Bins() int { return a.bins }

// Hop returns the number of samples consumed per frame.
func (a *Analyzer) Hop() int { return a.hop }

// Ended reports whether the source has returned io.EOF.
func (a *Analyzer) Ended() bool { return a.ended }

// Spectrum advances the source by one hop and writes linear magnitudes into dst.
// A magnitude of 0.5 corresponds to a full-scale sine centered on a bin.
// io.EOF is passed through after the last partial hop has been analyzed,
// zero-padded to a full hop.
func (a *Analyzer) Spectrum(dst []float64) error {
	if len(dst) != a.bins {
		return fmt.Errorf("%w: got %d, want %d", ErrSpectrumSize, len(dst), a.bins)
	}

	n, err := a.src.Read(a.incoming)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading audio source: %w", err)
	}
	if errors.Is(err, io.EOF) {
		// Pad the final hop with silence
		a.ended = true
		clear(a.incoming[n:])
		n = len(a.incoming)
	}
	a.push(a.incoming[:n])

	copy(a.frame, a.hist)
	a.win.Apply(a.frame)
	a.coeff = a.fft.Coefficients(a.coeff, a.frame)

	for i := range dst {
		dst[i] = cmplx.Abs(a.coeff[i]) / a.gain
	}
	return err
}

// push shifts samples into the end of the history.
func (a *Analyzer) push(samples []float64) {
	if len(samples) >= len(a.hist) {
		copy(a.hist, samples[len(samples)-len(a.hist):])
		return
	}
	copy(a.hist, a.hist[len(samples):])
	copy(a.hist[len(a.hist)-len(samples):], samples)
}
