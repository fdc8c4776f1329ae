package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/spectrogrid/audio"
	"github.com/pthm-cable/spectrogrid/config"
)

// Candidate is one point of the sweep.
type Candidate struct {
	BandWidth int
	Window    string
}

// String returns a short label such as "32/hann".
func (c Candidate) String() string {
	return fmt.Sprintf("%d/%s", c.BandWidth, c.Window)
}

// ApplyToConfig writes the candidate into cfg and recomputes derived values.
func (c Candidate) ApplyToConfig(cfg *config.Config) error {
	cfg.Spectrum.BandWidth = c.BandWidth
	cfg.Audio.Window = c.Window
	return cfg.Refresh()
}

// ParseBandWidths parses a comma separated list such as "8,16,32".
func ParseBandWidths(s string) ([]int, error) {
	var widths []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("band width %q: %w", part, err)
		}
		widths = append(widths, w)
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("no band widths in %q", s)
	}
	return widths, nil
}

// ParseWindows parses a comma separated list of window names. Names are
// normalized to their canonical form.
func ParseWindows(s string) ([]string, error) {
	var names []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := audio.ParseWindow(part)
		if err != nil {
			return nil, err
		}
		names = append(names, w.String())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no windows in %q", s)
	}
	return names, nil
}

// Candidates returns the cross product of widths and windows, widths outermost.
func Candidates(widths []int, windows []string) []Candidate {
	out := make([]Candidate, 0, len(widths)*len(windows))
	for _, w := range widths {
		for _, win := range windows {
			out = append(out, Candidate{BandWidth: w, Window: win})
		}
	}
	return out
}
