// Package main sweeps band widths and FFT windows over an audio source and
// ranks them by how lively the resulting band array is.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/spectrogrid/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	audioFile := flag.String("audio", "", "WAV file to analyze (empty = config source)")
	widths := flag.String("band-widths", "8,16,32,64,100", "Comma separated band widths")
	windows := flag.String("windows", "rectangular,hann,blackman_harris", "Comma separated FFT windows")
	maxFrames := flag.Int("max-frames", 1800, "Frames per run")
	seed := flag.Int64("seed", 42, "Tone source noise seed")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if *outputDir == "" {
		fail("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fail("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		fail("failed to load config: %v", err)
	}
	if *audioFile != "" {
		baseCfg.Audio.File = *audioFile
		baseCfg.Audio.Loop = false
	}

	bw, err := ParseBandWidths(*widths)
	if err != nil {
		fail("%v", err)
	}
	wins, err := ParseWindows(*windows)
	if err != nil {
		fail("%v", err)
	}
	cands := Candidates(bw, wins)

	fmt.Printf("Sweeping %d candidates, %d frames each\n", len(cands), *maxFrames)
	start := time.Now()
	results := NewEvaluator(baseCfg, int32(*maxFrames), *seed).EvaluateAll(cands)
	fmt.Printf("Done in %s\n\n", time.Since(start).Round(time.Millisecond))

	for i, r := range results {
		if r.Err != "" {
			fmt.Printf("  %2d. %3d/%-16s error: %s\n", i+1, r.BandWidth, r.Window, r.Err)
			continue
		}
		fmt.Printf("  %2d. %3d/%-16s score=%.3f contrast=%.3f motion=%.3f nonfinite=%d\n",
			i+1, r.BandWidth, r.Window, r.Score, r.Contrast, r.Motion, r.NonFiniteBands)
	}

	csvPath := filepath.Join(*outputDir, "sweep.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		fail("failed to create %s: %v", csvPath, err)
	}
	if err := gocsv.MarshalFile(&results, f); err != nil {
		f.Close()
		fail("failed to write %s: %v", csvPath, err)
	}
	f.Close()

	// Save the best setting as a runnable config
	bestCfg, err := BestConfig(baseCfg, results[0])
	if err != nil {
		fail("%v", err)
	}
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		slog.Error("failed to write best config", "error", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

func fail(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
