package game

import (
	"github.com/pthm-cable/spectrogrid/audio"
	"github.com/pthm-cable/spectrogrid/config"
	"github.com/pthm-cable/spectrogrid/telemetry"
)

// SpectrumSource fills one frame of magnitude bins. *audio.Analyzer implements it.
// Returning io.EOF marks the final frame.
type SpectrumSource interface {
	Spectrum(dst []float64) error
}

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Source         audio.Source   // nil = audio.FromConfig
	Spectrum       SpectrumSource // overrides Source and the analyzer entirely
	Seed           int64
	LogStats       bool    // log window stats, perf and bookmarks
	LogBands       bool    // slog.Debug every band each frame
	StatsWindowSec float64 // 0 = config value
	OutputDir      string  // empty = no CSV output
	Headless       bool

	// StatsCallback, when set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}
