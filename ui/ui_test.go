package ui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spectrogrid/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:64", WidgetBar, map[string]string{"max": "64"}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"bogus, max:2", WidgetAuto, map[string]string{"max": "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			widget, options := ParseTag(tt.tag)
			if widget != tt.widget {
				t.Errorf("widget = %v, want %v", widget, tt.widget)
			}
			if len(options) != len(tt.options) {
				t.Fatalf("options = %v, want %v", options, tt.options)
			}
			for k, v := range tt.options {
				if options[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, options[k], v)
				}
			}
		})
	}
}

func TestExtractFieldsFromComponents(t *testing.T) {
	scale := components.Scale{X: 0.9, Y: 25, Z: 0.9}
	fields := ExtractFields(&scale)
	if len(fields) != 1 || fields[0].Name != "Y" || fields[0].Widget != WidgetBar {
		t.Fatalf("Scale fields = %+v, want only Y as a bar", fields)
	}
	if got := OptionFloat(fields[0].Options, "max", 1); got != 64 {
		t.Errorf("max option = %v, want 64", got)
	}

	pos := components.Position{X: 3, Y: 0, Z: 4}
	fields = ExtractFields(pos)
	if len(fields) != 3 {
		t.Fatalf("Position fields = %d, want 3", len(fields))
	}
	if got := FormatValue(fields[2].Value, fields[2].Options["fmt"]); got != "4.0" {
		t.Errorf("Z formatted as %q, want 4.0", got)
	}

	if ExtractFields(42) != nil {
		t.Error("non-struct should yield no fields")
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(float32(1.234), ""); got != "1.23" {
		t.Errorf("float32 = %q", got)
	}
	if got := FormatValue(uint8(5), ""); got != "5" {
		t.Errorf("uint8 = %q", got)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		v, min, max, want float32
	}{
		{5, 0, 10, 0.5},
		{-1, 0, 10, 0},
		{11, 0, 10, 1},
		{7, 4, 10, 0.5},
		{1, 1, 1, 0},
		{float32(math.NaN()), 0, 1, 0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("Ratio(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestOverlayDefaultsAndExclusive(t *testing.T) {
	ov := NewOverlays()

	for _, o := range []Overlay{OverlayHUD, OverlayBands, OverlayFloor} {
		if !ov.IsEnabled(o) {
			t.Errorf("%s should start enabled", o)
		}
	}
	if ov.IsEnabled(OverlayPerf) || ov.IsEnabled(OverlayControls) {
		t.Error("perf and controls should start disabled")
	}

	o, on, ok := ov.HandleKeyPress(rl.KeyF3)
	if !ok || o != OverlayPerf || !on {
		t.Fatalf("F3 = (%v, %v, %v)", o, on, ok)
	}
	ov.Toggle(OverlayControls)
	if ov.IsEnabled(OverlayPerf) {
		t.Error("enabling controls should disable perf")
	}
	if !ov.IsEnabled(OverlayBands) {
		t.Error("band chart is not in the left column and should stay on")
	}
	if ov.Toggle(OverlayControls) || ov.IsEnabled(OverlayPerf) {
		t.Error("disabling controls should not bring perf back")
	}

	if _, _, ok := ov.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle")
	}
	if ov.IsEnabled(overlayCount) {
		t.Error("out of range overlay reported enabled")
	}
}

func TestOverlaySections(t *testing.T) {
	seen := make(map[Overlay]bool)
	for sec := Section(0); sec < sectionCount; sec++ {
		for _, o := range InSection(sec) {
			if seen[o] {
				t.Errorf("%s listed twice", o)
			}
			seen[o] = true
			if o.KeyLabel() == "" {
				t.Errorf("%s has no key label", o)
			}
		}
	}
	if len(seen) != int(overlayCount) {
		t.Errorf("legend lists %d overlays, want %d", len(seen), overlayCount)
	}

	tests := []struct {
		sec  Section
		want string
	}{
		{SectionPanels, "Panels"},
		{SectionScene, "Scene"},
		{SectionDebug, "Debug"},
		{sectionCount, "Section(3)"},
	}
	for _, tt := range tests {
		if got := tt.sec.String(); got != tt.want {
			t.Errorf("Section(%d).String() = %q, want %q", uint8(tt.sec), got, tt.want)
		}
	}
	if got := Overlay(200).String(); got != "Overlay(200)" {
		t.Errorf("unknown overlay = %q", got)
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		data HUDData
		want string
	}{
		{HUDData{}, "Running"},
		{HUDData{Paused: true}, "PAUSED"},
		{HUDData{Paused: true, Ended: true}, "SOURCE ENDED"},
		{HUDData{NonFinite: 3}, "Running (3 silent bands)"},
	}
	for _, tt := range tests {
		if got, _ := statusLine(tt.data); got != tt.want {
			t.Errorf("statusLine(%+v) = %q, want %q", tt.data, got, tt.want)
		}
	}
}
