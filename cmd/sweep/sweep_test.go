package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/spectrogrid/config"
	"github.com/pthm-cable/spectrogrid/telemetry"
)

func TestParseBandWidths(t *testing.T) {
	got, err := ParseBandWidths(" 8, 16 ,32,")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 8 || got[2] != 32 {
		t.Errorf("widths = %v, want [8 16 32]", got)
	}

	for _, bad := range []string{"", ",", "8,x"} {
		if _, err := ParseBandWidths(bad); err == nil {
			t.Errorf("ParseBandWidths(%q) should fail", bad)
		}
	}
}

func TestParseWindowsNormalizes(t *testing.T) {
	got, err := ParseWindows("Hanning,blackman-harris")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "hann" || got[1] != "blackman_harris" {
		t.Errorf("windows = %v", got)
	}
	if _, err := ParseWindows("kaiser"); err == nil {
		t.Error("unknown window should fail")
	}
}

func TestCandidates(t *testing.T) {
	cands := Candidates([]int{16, 32}, []string{"hann", "hamming", "blackman"})
	if len(cands) != 6 {
		t.Fatalf("got %d candidates, want 6", len(cands))
	}
	if cands[0].String() != "16/hann" || cands[5].String() != "32/blackman" {
		t.Errorf("order = %v", cands)
	}
}

func TestScoreWindows(t *testing.T) {
	windows := []telemetry.WindowStats{
		{Frames: 60, BandMean: 4, BandStd: 1},
		{Frames: 60, BandMean: 6, BandStd: 3},
		{Frames: 0}, // empty trailing window
	}
	var res Result
	scoreWindows(&res, windows)

	if res.BandMean != 5 || res.Contrast != 2 {
		t.Errorf("mean, contrast = %v, %v; want 5, 2", res.BandMean, res.Contrast)
	}
	if math.Abs(res.Motion-math.Sqrt2) > 1e-9 {
		t.Errorf("motion = %v, want √2", res.Motion)
	}
	if math.Abs(res.Score-(2+math.Sqrt2)) > 1e-9 {
		t.Errorf("score = %v", res.Score)
	}

	// Non-finite bands cost at least one point
	penalized := Result{}
	windows[0].NonFiniteBands = 10
	scoreWindows(&penalized, windows)
	if math.Abs(res.Score-penalized.Score-2) > 1e-9 {
		t.Errorf("penalty = %v, want 2", res.Score-penalized.Score)
	}
}

func TestEvaluateRunsHeadless(t *testing.T) {
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	e := NewEvaluator(cfg, 120, 1)

	results := e.EvaluateAll([]Candidate{
		{BandWidth: 32, Window: "hann"},
		{BandWidth: 0, Window: "hann"},
	})
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	ok, bad := results[0], results[1]
	if ok.Err != "" || ok.Frames != 120 || ok.Bands != 32 {
		t.Errorf("good candidate = %+v", ok)
	}
	if bad.Err == "" || !math.IsInf(bad.Score, -1) {
		t.Errorf("zero band width should fail and sort last: %+v", bad)
	}
	if cfg.Spectrum.BandWidth != 32 || cfg.Audio.Window != "blackman_harris" {
		t.Error("evaluation mutated the base config")
	}
}

func TestBestConfigKeepsScoredSource(t *testing.T) {
	base, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	base.Audio.File = "take.wav"
	base.Audio.Loop = false

	cfg, err := BestConfig(base, Result{BandWidth: 64, Window: "hann"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Audio.File != "take.wav" || cfg.Audio.Loop {
		t.Errorf("source = %q loop=%v, want the scored non-looping file", cfg.Audio.File, cfg.Audio.Loop)
	}
	if cfg.Spectrum.BandWidth != 64 || cfg.Audio.Window != "hann" || cfg.Derived.BandCount != 16 {
		t.Errorf("candidate not applied: %+v / %+v", cfg.Spectrum, cfg.Derived)
	}
	if base.Spectrum.BandWidth != 32 {
		t.Error("BestConfig mutated the base config")
	}

	if _, err := BestConfig(base, Result{BandWidth: 0, Window: "hann", Err: "boom"}); err == nil {
		t.Error("failed best result should be an error")
	}
}
