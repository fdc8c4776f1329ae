// Package telemetry provides band/height statistics, perf timing, bookmarks and CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	TimeSec          float64 `csv:"time"`
	Frames           int     `csv:"frames"`

	// Band values over the window (finite values only)
	BandMean float64 `csv:"band_mean"`
	BandStd  float64 `csv:"band_std"`
	BandMin  float64 `csv:"band_min"`
	BandMax  float64 `csv:"band_max"`

	// Non-finite conditions seen during the window
	NonFiniteBands int `csv:"nonfinite_bands"` // band values that were NaN or ±Inf
	NonFiniteCells int `csv:"nonfinite_cells"` // entity heights that became NaN or ±Inf
	SilentFrames   int `csv:"silent_frames"`   // frames where every band was non-finite
	SourceErrors   int `csv:"source_errors"`

	// Entity heights sampled at window end (finite values only)
	HeightMean float64 `csv:"height_mean"`
	HeightP10  float64 `csv:"height_p10"`
	HeightP50  float64 `csv:"height_p50"`
	HeightP90  float64 `csv:"height_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Finite returns the finite values of xs in a new slice.
func Finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// ComputeHeightStats calculates mean and percentiles of finite heights.
func ComputeHeightStats(values []float64) (mean, p10, p50, p90 float64) {
	sorted := Finite(values)
	if len(sorted) == 0 {
		return 0, 0, 0, 0
	}
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("time", s.TimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("band_mean", s.BandMean),
		slog.Float64("band_std", s.BandStd),
		slog.Float64("band_min", s.BandMin),
		slog.Float64("band_max", s.BandMax),
		slog.Int("nonfinite_bands", s.NonFiniteBands),
		slog.Int("nonfinite_cells", s.NonFiniteCells),
		slog.Int("silent_frames", s.SilentFrames),
		slog.Int("source_errors", s.SourceErrors),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_p10", s.HeightP10),
		slog.Float64("height_p50", s.HeightP50),
		slog.Float64("height_p90", s.HeightP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
