package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Collector accumulates per-frame band data within windows and produces WindowStats.
type Collector struct {
	windowDurationFrames int32
	dt                   float64

	// Current window tracking
	windowStartFrame int32
	frames           int

	// Band accumulators for current window (finite values only)
	bandValues     []float64
	bandMin        float64
	bandMax        float64
	nonFiniteBands int
	nonFiniteCells int
	silentFrames   int
	sourceErrors   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: seconds per frame
func NewCollector(windowDurationSec, dt float64) *Collector {
	framesPerWindow := int32(math.Round(windowDurationSec / dt))
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}

	c := &Collector{
		windowDurationFrames: framesPerWindow,
		dt:                   dt,
	}
	c.reset(0)
	return c
}

// RecordBands folds one frame's band array into the window.
func (c *Collector) RecordBands(bands []float64) {
	c.frames++
	finite := 0
	for _, v := range bands {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c.nonFiniteBands++
			continue
		}
		finite++
		c.bandValues = append(c.bandValues, v)
		c.bandMin = math.Min(c.bandMin, v)
		c.bandMax = math.Max(c.bandMax, v)
	}
	if finite == 0 && len(bands) > 0 {
		c.silentFrames++
	}
}

// RecordNonFiniteCells records entity heights that became non-finite this frame.
func (c *Collector) RecordNonFiniteCells(n int) {
	c.nonFiniteCells += n
}

// RecordSourceError records a failed audio read.
func (c *Collector) RecordSourceError() {
	c.sourceErrors++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int32) bool {
	return currentFrame-c.windowStartFrame >= c.windowDurationFrames
}

// Pending reports whether frames were recorded since the last flush.
func (c *Collector) Pending() bool {
	return c.frames > 0
}

// Flush produces a WindowStats and resets counters for the next window.
// heights are the entity scale.y values sampled at window end.
func (c *Collector) Flush(currentFrame int32, heights []float64) WindowStats {
	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		TimeSec:          float64(currentFrame) * c.dt,
		Frames:           c.frames,
		NonFiniteBands:   c.nonFiniteBands,
		NonFiniteCells:   c.nonFiniteCells,
		SilentFrames:     c.silentFrames,
		SourceErrors:     c.sourceErrors,
	}

	if n := len(c.bandValues); n > 0 {
		stats.BandMean = stat.Mean(c.bandValues, nil)
		if n > 1 {
			stats.BandStd = stat.StdDev(c.bandValues, nil)
		}
		stats.BandMin = c.bandMin
		stats.BandMax = c.bandMax
	}

	stats.HeightMean, stats.HeightP10, stats.HeightP50, stats.HeightP90 = ComputeHeightStats(heights)

	c.reset(currentFrame)
	return stats
}

func (c *Collector) reset(startFrame int32) {
	c.windowStartFrame = startFrame
	c.frames = 0
	c.bandValues = c.bandValues[:0]
	c.bandMin = math.Inf(1)
	c.bandMax = math.Inf(-1)
	c.nonFiniteBands = 0
	c.nonFiniteCells = 0
	c.silentFrames = 0
	c.sourceErrors = 0
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int32 {
	return c.windowDurationFrames
}
