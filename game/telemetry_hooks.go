package game

import (
	"log/slog"
)

// flushTelemetry flushes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}
	g.flushWindow()
}

// flushWindow emits the current stats window and checks it for bookmarks.
func (g *Game) flushWindow() {
	stats := g.collector.Flush(g.frame, g.sampleHeights())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	bookmarks := g.bookmarkDetector.Check(stats)
	if g.logStats {
		for _, bm := range bookmarks {
			bm.LogBookmark()
		}
	}

	if err := g.outputManager.WriteWindow(stats, perfStats, bookmarks); err != nil {
		slog.Error("failed to write stats window", "frame", stats.WindowEndFrame, "error", err)
	}
}
