package audio

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/dsp/window"
)

// Window selects the tapering function applied before the FFT.
type Window uint8

const (
	WindowRectangular Window = iota
	WindowTriangular
	WindowHamming
	WindowHann
	WindowBlackman
	WindowBlackmanHarris
)

var windowNames = map[Window]string{
	WindowRectangular:    "rectangular",
	WindowTriangular:     "triangular",
	WindowHamming:        "hamming",
	WindowHann:           "hann",
	WindowBlackman:       "blackman",
	WindowBlackmanHarris: "blackman_harris",
}

// ParseWindow maps a config name to a Window. Empty selects Blackman-Harris.
func ParseWindow(name string) (Window, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return WindowBlackmanHarris, nil
	}
	name = strings.ReplaceAll(name, "-", "_")
	if name == "hanning" {
		name = "hann"
	}
	for w, n := range windowNames {
		if n == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
}

// String returns the config name of the window.
func (w Window) String() string {
	if n, ok := windowNames[w]; ok {
		return n
	}
	return fmt.Sprintf("window(%d)", uint8(w))
}

// Apply tapers seq in place and returns it.
func (w Window) Apply(seq []float64) []float64 {
	switch w {
	case WindowTriangular:
		return window.Triangular(seq)
	case WindowHamming:
		return window.Hamming(seq)
	case WindowHann:
		return window.Hann(seq)
	case WindowBlackman:
		return window.Blackman(seq)
	case WindowBlackmanHarris:
		return window.BlackmanHarris(seq)
	default:
		return window.Rectangular(seq)
	}
}

// coherentGain returns the sum of the window's coefficients over n samples.
func (w Window) coherentGain(n int) float64 {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	var sum float64
	for _, v := range w.Apply(ones) {
		sum += v
	}
	return sum
}
