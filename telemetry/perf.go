package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/spectrogrid/systems"
)

// StageTiming is the average cost of one pipeline stage over the window.
type StageTiming struct {
	ID  string
	Avg time.Duration
	Pct float64 // share of the average step, 0-100
}

// PerfCollector times pipeline steps over a rolling window. The stage list
// is fixed when the collector is built, so every step fills one row of
// per-stage durations in a preallocated ring.
type PerfCollector struct {
	stages []string
	slot   map[string]int

	steps  []time.Duration   // total step duration per ring row
	timing [][]time.Duration // timing[row][stage]
	next   int
	filled int

	stepStart  time.Time
	stageStart time.Time
	current    int // index of the stage being timed, -1 when none

	lastDraw     time.Time
	drawInterval time.Duration
}

// NewPerfCollector builds a collector averaging over window steps for the
// given stages, in the order a step runs them.
func NewPerfCollector(window int, stages []string) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		stages:  stages,
		slot:    make(map[string]int, len(stages)),
		steps:   make([]time.Duration, window),
		timing:  make([][]time.Duration, window),
		current: -1,
	}
	for i, id := range stages {
		p.slot[id] = i
	}
	for i := range p.timing {
		p.timing[i] = make([]time.Duration, len(stages))
	}
	return p
}

// StartStep begins timing a new step in the next ring row.
func (p *PerfCollector) StartStep() {
	p.stepStart = time.Now()
	p.current = -1
	clear(p.timing[p.next])
}

// StartStage closes the running stage and starts timing id. A stage the
// collector was not built with is not timed.
func (p *PerfCollector) StartStage(id string) {
	now := time.Now()
	p.closeStage(now)
	p.stageStart = now
	p.current = -1
	if i, ok := p.slot[id]; ok {
		p.current = i
	}
}

func (p *PerfCollector) closeStage(now time.Time) {
	if p.current >= 0 {
		p.timing[p.next][p.current] += now.Sub(p.stageStart)
	}
}

// EndStep closes the running stage and commits the row.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	p.closeStage(now)
	p.current = -1
	p.steps[p.next] = now.Sub(p.stepStart)
	p.next = (p.next + 1) % len(p.steps)
	if p.filled < len(p.steps) {
		p.filled++
	}
}

// RecordDraw records the interval between rendered frames.
func (p *PerfCollector) RecordDraw() {
	now := time.Now()
	if !p.lastDraw.IsZero() {
		p.drawInterval = now.Sub(p.lastDraw)
	}
	p.lastDraw = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgStepDuration time.Duration
	MinStepDuration time.Duration
	MaxStepDuration time.Duration

	// One entry per stage, in step order.
	Stages []StageTiming

	StepsPerSecond float64

	// Graphics mode only
	DrawInterval time.Duration
	FPS          float64
}

// Stage returns the timing for id, or a zero timing if it is not tracked.
func (s PerfStats) Stage(id string) StageTiming {
	for _, st := range s.Stages {
		if st.ID == id {
			return st
		}
	}
	return StageTiming{ID: id}
}

// Stats averages the committed rows.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Stages:       make([]StageTiming, len(p.stages)),
		DrawInterval: p.drawInterval,
	}
	for i, id := range p.stages {
		stats.Stages[i].ID = id
	}
	if p.drawInterval > 0 {
		stats.FPS = float64(time.Second) / float64(p.drawInterval)
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	for row := 0; row < p.filled; row++ {
		d := p.steps[row]
		total += d
		if row == 0 || d < stats.MinStepDuration {
			stats.MinStepDuration = d
		}
		if d > stats.MaxStepDuration {
			stats.MaxStepDuration = d
		}
		for i, sd := range p.timing[row] {
			stats.Stages[i].Avg += sd
		}
	}

	n := time.Duration(p.filled)
	stats.AvgStepDuration = total / n
	for i := range stats.Stages {
		stats.Stages[i].Avg /= n
		if stats.AvgStepDuration > 0 {
			stats.Stages[i].Pct = float64(stats.Stages[i].Avg) / float64(stats.AvgStepDuration) * 100
		}
	}
	if stats.AvgStepDuration > 0 {
		stats.StepsPerSecond = float64(time.Second) / float64(stats.AvgStepDuration)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStepDuration.Microseconds(),
		"min_step_us", s.MinStepDuration.Microseconds(),
		"max_step_us", s.MaxStepDuration.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, st := range s.Stages {
		if st.Pct > 0.1 {
			attrs = append(attrs, st.ID+"_pct", int(st.Pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	SamplePct    float64 `csv:"sample_pct"`
	ReducePct    float64 `csv:"reduce_pct"`
	GridPct      float64 `csv:"grid_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgStepUS:    s.AvgStepDuration.Microseconds(),
		MinStepUS:    s.MinStepDuration.Microseconds(),
		MaxStepUS:    s.MaxStepDuration.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		SamplePct:    s.Stage(systems.StageSample).Pct,
		ReducePct:    s.Stage(systems.StageReduce).Pct,
		GridPct:      s.Stage(systems.StageGrid).Pct,
		TelemetryPct: s.Stage(systems.StageTelemetry).Pct,
	}
}
