// Package spectrum reduces per-frame magnitude spectra into log-compressed bands.
package spectrum

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Size is the number of magnitude bins delivered by the audio analyzer per frame.
const Size = 1024

// DefaultLogOffset is added to log10 of each band mean.
const DefaultLogOffset = 7.0

var (
	// ErrInvalidBandWidth means the band width is not in [1, size].
	ErrInvalidBandWidth = errors.New("spectrum: invalid band width")
	// ErrPartialBand means the band width does not divide the spectrum size;
	// trailing bins are dropped. Non-fatal.
	ErrPartialBand = errors.New("spectrum: band width leaves a partial band")
	// ErrSpectrumLength means Reduce was handed a buffer of the wrong length.
	ErrSpectrumLength = errors.New("spectrum: wrong spectrum length")
	// ErrNonFiniteBand means at least one band reduced to NaN or ±Inf.
	ErrNonFiniteBand = errors.New("spectrum: non-finite band value")
)

// BandArray holds one log-compressed value per band. It is allocated once and
// overwritten in place every frame.
type BandArray []float64

// Len returns the number of bands.
func (b BandArray) Len() int { return len(b) }

// CheckBandWidth reports whether width can reduce a spectrum of n bins.
// ErrPartialBand is returned (wrapped) when the width is usable but leaves
// n%width bins unused.
func CheckBandWidth(n, width int) error {
	if width <= 0 || width > n {
		return fmt.Errorf("%w: %d for %d bins", ErrInvalidBandWidth, width, n)
	}
	if rem := n % width; rem != 0 {
		return fmt.Errorf("%w: width %d drops %d of %d bins", ErrPartialBand, width, rem, n)
	}
	return nil
}

// Reducer averages contiguous runs of bandWidth bins and log-compresses them.
type Reducer struct {
	size      int
	bandWidth int
	bandCount int
	offset    float64
	logBands  bool
}

// Options configures a Reducer.
type Options struct {
	Size      int     // bins per frame (0 = Size)
	BandWidth int     // bins per band
	LogOffset float64 // added after log10
	LogBands  bool    // slog.Debug every band on each Reduce
}

// NewReducer creates a reducer. A band width that does not divide the spectrum
// size returns a usable reducer together with a wrapped ErrPartialBand.
func NewReducer(opts Options) (*Reducer, error) {
	size := opts.Size
	if size == 0 {
		size = Size
	}
	err := CheckBandWidth(size, opts.BandWidth)
	if err != nil && !errors.Is(err, ErrPartialBand) {
		return nil, err
	}

	r := &Reducer{
		size:      size,
		bandWidth: opts.BandWidth,
		bandCount: size / opts.BandWidth,
		offset:    opts.LogOffset,
		logBands:  opts.LogBands,
	}
	return r, err
}

// BandCount returns the number of whole bands produced per frame.
func (r *Reducer) BandCount() int { return r.bandCount }

// BandWidth returns the number of bins averaged into each band.
func (r *Reducer) BandWidth() int { return r.bandWidth }

// NewBandArray allocates a band array sized for this reducer.
func (r *Reducer) NewBandArray() BandArray {
	return make(BandArray, r.bandCount)
}

// Report describes the outcome of one Reduce call.
type Report struct {
	NonFinite []int // indices of bands that reduced to NaN or ±Inf
}

// Err returns ErrNonFiniteBand (wrapped) when any band is non-finite.
func (rep Report) Err() error {
	if len(rep.NonFinite) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d bands (first %d)", ErrNonFiniteBand, len(rep.NonFinite), rep.NonFinite[0])
}

// Reduce overwrites out with band i = log10(mean(raw[i*w:(i+1)*w])) + offset.
// A silent band yields -Inf and is written as-is; it is listed in the report.
func (r *Reducer) Reduce(raw []float64, out BandArray) (Report, error) {
	var rep Report
	if len(raw) != r.size {
		return rep, fmt.Errorf("%w: got %d, want %d", ErrSpectrumLength, len(raw), r.size)
	}
	if len(out) != r.bandCount {
		return rep, fmt.Errorf("%w: band array has %d bands, want %d", ErrSpectrumLength, len(out), r.bandCount)
	}

	for i := range out {
		lo := i * r.bandWidth
		mean := stat.Mean(raw[lo:lo+r.bandWidth], nil)
		v := math.Log10(mean) + r.offset
		out[i] = v

		if math.IsNaN(v) || math.IsInf(v, 0) {
			rep.NonFinite = append(rep.NonFinite, i)
		}
		if r.logBands {
			slog.Debug("band", "index", i, "value", v)
		}
	}
	return rep, nil
}
