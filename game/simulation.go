package game

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pthm-cable/spectrogrid/systems"
)

// Step runs one frame of the pipeline: sample, reduce, then grid update.
// The stages run in program order on the calling goroutine, so the grid
// always sees the bands reduced in the same step.
//
// io.EOF from the spectrum source still completes the step and marks the
// game as ended. Non-finite bands and heights are logged and counted but do
// not fail the step.
func (g *Game) Step() error {
	g.perfCollector.StartStep()

	g.perfCollector.StartStage(systems.StageSample)
	srcErr := g.sampler.Spectrum(g.raw)
	if srcErr != nil && !errors.Is(srcErr, io.EOF) {
		g.collector.RecordSourceError()
		g.perfCollector.EndStep()
		return fmt.Errorf("frame %d: sampling spectrum: %w", g.frame, srcErr)
	}

	g.perfCollector.StartStage(systems.StageReduce)
	report, err := g.reducer.Reduce(g.raw, g.bands)
	if err != nil {
		g.perfCollector.EndStep()
		return fmt.Errorf("frame %d: reducing spectrum: %w", g.frame, err)
	}
	g.lastReport = report
	if err := report.Err(); err != nil {
		slog.Debug("non-finite bands", "frame", g.frame, "error", err)
	}

	g.perfCollector.StartStage(systems.StageGrid)
	res, err := g.grid.Update(g.bands)
	if err != nil {
		g.perfCollector.EndStep()
		return fmt.Errorf("frame %d: updating grid: %w", g.frame, err)
	}
	if res.NonFinite > 0 && g.lastGrid.NonFinite == 0 {
		slog.Warn("grid heights became non-finite", "frame", g.frame, "cells", res.NonFinite)
	}
	g.lastGrid = res

	g.perfCollector.StartStage(systems.StageTelemetry)
	g.collector.RecordBands(g.bands)
	g.collector.RecordNonFiniteCells(res.NonFinite)
	g.frame++
	g.flushTelemetry()

	g.perfCollector.EndStep()

	if errors.Is(srcErr, io.EOF) && !g.ended {
		g.ended = true
		slog.Info("audio source ended", "frame", g.frame)
	}
	return nil
}

// UpdateHeadless runs one step without any rendering. Errors are logged.
func (g *Game) UpdateHeadless() {
	if g.ended {
		return
	}
	if err := g.Step(); err != nil {
		slog.Error("step failed", "error", err)
	}
}

// sampleHeights collects every entity's scale.y into the reused heights buffer.
func (g *Game) sampleHeights() []float64 {
	g.heights = g.heights[:0]
	for _, e := range g.entities {
		_, scale, _ := g.cellMap.Get(e)
		g.heights = append(g.heights, float64(scale.Y))
	}
	return g.heights
}
