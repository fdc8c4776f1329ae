package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkLoudnessSurge BookmarkType = "loudness_surge"
	BookmarkSilence       BookmarkType = "silence"
	BookmarkNonFinite     BookmarkType = "nonfinite_heights"
	BookmarkSettled       BookmarkType = "settled_grid"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int32        `csv:"frame"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in the band stream.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	inSilence          bool
	nonFiniteReported  bool
	settledWindowCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for settled grid detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSilence(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkNonFinite(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkLoudnessSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkSettled(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	history := bd.getHistory()
	if n > len(history) {
		n = len(history)
	}
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

// checkLoudnessSurge fires when the window's mean band level is at least one
// decade (log10 unit) above the rolling average.
func (bd *BookmarkDetector) checkLoudnessSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Frames == stats.SilentFrames {
		return nil
	}

	var sum float64
	var n int
	for _, h := range history {
		if h.Frames > h.SilentFrames {
			sum += h.BandMean
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)

	if stats.BandMean-avg >= 1.0 {
		return &Bookmark{
			Type:        BookmarkLoudnessSurge,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Band mean %.2f is %.2f above average (%.2f)", stats.BandMean, stats.BandMean-avg, avg),
		}
	}
	return nil
}

// checkSilence fires on entering a window where most frames had no finite band.
func (bd *BookmarkDetector) checkSilence(stats WindowStats) *Bookmark {
	silent := stats.Frames > 0 && stats.SilentFrames*2 > stats.Frames
	if !silent {
		bd.inSilence = false
		return nil
	}
	if bd.inSilence {
		return nil
	}
	bd.inSilence = true
	return &Bookmark{
		Type:        BookmarkSilence,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("%d of %d frames had no finite band", stats.SilentFrames, stats.Frames),
	}
}

// checkNonFinite fires once, the first time any cell height goes non-finite.
func (bd *BookmarkDetector) checkNonFinite(stats WindowStats) *Bookmark {
	if bd.nonFiniteReported || stats.NonFiniteCells == 0 {
		return nil
	}
	bd.nonFiniteReported = true
	return &Bookmark{
		Type:        BookmarkNonFinite,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("%d cell heights became non-finite", stats.NonFiniteCells),
	}
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	recent := bd.recent(4)
	if len(recent) < 4 || stats.HeightMean == 0 {
		bd.settledWindowCount = 0
		return nil
	}

	// Relative drift of mean height across the last four windows
	var lo, hi = math.Inf(1), math.Inf(-1)
	for _, h := range recent {
		lo = math.Min(lo, h.HeightMean)
		hi = math.Max(hi, h.HeightMean)
	}
	lo = math.Min(lo, stats.HeightMean)
	hi = math.Max(hi, stats.HeightMean)

	if (hi-lo)/math.Abs(stats.HeightMean) < 0.01 {
		bd.settledWindowCount++
	} else {
		bd.settledWindowCount = 0
	}

	if bd.settledWindowCount == 5 { // trigger exactly once per settled run
		return &Bookmark{
			Type:        BookmarkSettled,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("Grid heights settled around %.2f", stats.HeightMean),
		}
	}
	return nil
}
