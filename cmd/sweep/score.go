package main

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/spectrogrid/config"
	"github.com/pthm-cable/spectrogrid/game"
	"github.com/pthm-cable/spectrogrid/telemetry"
)

// Result is one scored candidate, written as a row of sweep.csv.
type Result struct {
	BandWidth      int     `csv:"band_width"`
	Window         string  `csv:"window"`
	Bands          int     `csv:"bands"`
	DroppedBins    int     `csv:"dropped_bins"`
	Frames         int32   `csv:"frames"`
	BandMean       float64 `csv:"band_mean"`
	Contrast       float64 `csv:"contrast"` // mean within-window band std
	Motion         float64 `csv:"motion"`   // std of band mean across windows
	NonFiniteBands int     `csv:"nonfinite_bands"`
	NonFiniteCells int     `csv:"nonfinite_cells"`
	Score          float64 `csv:"score"`
	Err            string  `csv:"error"`
}

// Evaluator runs headless visualizer passes and scores them.
type Evaluator struct {
	baseConfig  *config.Config
	maxFrames   int32
	seed        int64
	statsWindow float64
}

// NewEvaluator creates an evaluator over a base config.
func NewEvaluator(baseCfg *config.Config, maxFrames int32, seed int64) *Evaluator {
	return &Evaluator{
		baseConfig:  baseCfg,
		maxFrames:   maxFrames,
		seed:        seed,
		statsWindow: 1.0,
	}
}

// EvaluateAll scores every candidate concurrently and returns the results
// sorted best first.
func (e *Evaluator) EvaluateAll(cands []Candidate) []Result {
	results := make([]Result, len(cands))
	var wg sync.WaitGroup
	for i, c := range cands {
		wg.Add(1)
		go func(idx int, c Candidate) {
			defer wg.Done()
			results[idx] = e.Evaluate(c)
		}(i, c)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Evaluate runs one headless pass with the candidate applied.
func (e *Evaluator) Evaluate(c Candidate) Result {
	res := Result{BandWidth: c.BandWidth, Window: c.Window, Score: math.Inf(-1)}

	cfg := cloneConfig(e.baseConfig)
	if err := c.ApplyToConfig(cfg); err != nil {
		res.Err = err.Error()
		return res
	}
	res.Bands = cfg.Derived.BandCount
	res.DroppedBins = cfg.Derived.BandRemainder

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           e.seed,
		StatsWindowSec: e.statsWindow,
		Headless:       true,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		res.Err = err.Error()
		return res
	}

	for g.Frame() < e.maxFrames && !g.Ended() {
		if err := g.Step(); err != nil {
			res.Err = err.Error()
			break
		}
	}
	res.Frames = g.Frame()
	g.Unload()

	scoreWindows(&res, windows)
	return res
}

// scoreWindows fills the aggregate fields of res. A useful setting keeps
// bands spread apart within a window (contrast) and lets the overall level
// move between windows (motion); non-finite values are penalized.
func scoreWindows(res *Result, windows []telemetry.WindowStats) {
	var means, stds []float64
	for _, w := range windows {
		res.NonFiniteBands += w.NonFiniteBands
		res.NonFiniteCells += w.NonFiniteCells
		if w.Frames == 0 {
			continue
		}
		means = append(means, w.BandMean)
		stds = append(stds, w.BandStd)
	}
	if len(means) == 0 {
		return
	}

	res.BandMean = stat.Mean(means, nil)
	res.Contrast = stat.Mean(stds, nil)
	if len(means) > 1 {
		res.Motion = stat.StdDev(means, nil)
	}

	penalty := 0.0
	if res.NonFiniteBands > 0 {
		penalty = 1 + math.Log10(float64(res.NonFiniteBands))
	}
	res.Score = res.Contrast + res.Motion - penalty
}

// cloneConfig returns a copy of base that a run may mutate.
func cloneConfig(base *config.Config) *config.Config {
	cfg := *base
	cfg.Audio.Tones = append([]config.ToneConfig(nil), base.Audio.Tones...)
	cfg.Render.Palette = append([]string(nil), base.Render.Palette...)
	return &cfg
}

// BestConfig applies the winning result to a copy of the config the sweep
// was scored against.
func BestConfig(base *config.Config, best Result) (*config.Config, error) {
	if best.Err != "" {
		return nil, fmt.Errorf("best candidate %d/%s failed: %s", best.BandWidth, best.Window, best.Err)
	}
	cfg := cloneConfig(base)
	if err := (Candidate{BandWidth: best.BandWidth, Window: best.Window}).ApplyToConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
