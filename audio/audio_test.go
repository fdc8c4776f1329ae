package audio

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in   string
		want Window
	}{
		{"", WindowBlackmanHarris},
		{"blackman_harris", WindowBlackmanHarris},
		{"Blackman-Harris", WindowBlackmanHarris},
		{"hanning", WindowHann},
		{"hann", WindowHann},
		{"rectangular", WindowRectangular},
		{"triangular", WindowTriangular},
		{"hamming", WindowHamming},
		{"blackman", WindowBlackman},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWindow(tt.in)
			if err != nil {
				t.Fatalf("ParseWindow(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWindow(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseWindow("kaiser"); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("ParseWindow(kaiser) error = %v, want ErrUnknownWindow", err)
	}
}

// A sine with an integer number of cycles over the FFT frame lands on one bin.
func TestAnalyzerPeakBin(t *testing.T) {
	const (
		bins = 1024
		rate = 20480 // bin spacing of 10 Hz for a 2048-point FFT
		fps  = 10    // hop of 2048 fills the history in one frame
	)
	src := NewToneSource(rate, []Tone{{Frequency: 1000, Amplitude: 0.8}}, 0, 1)
	a := NewAnalyzer(src, WindowRectangular, bins, fps)
	if a.Hop() != 2048 {
		t.Fatalf("hop = %d, want 2048", a.Hop())
	}

	dst := make([]float64, bins)
	if err := a.Spectrum(dst); err != nil {
		t.Fatal(err)
	}

	peak := 0
	for i, v := range dst {
		if v > dst[peak] {
			peak = i
		}
	}
	if peak != 100 {
		t.Errorf("peak bin = %d, want 100", peak)
	}
	if math.Abs(dst[100]-0.4) > 1e-6 {
		t.Errorf("peak magnitude = %v, want 0.4", dst[100])
	}
}

func TestAnalyzerBlackmanHarrisPeak(t *testing.T) {
	src := NewToneSource(20480, []Tone{{Frequency: 2000, Amplitude: 1}}, 0, 1)
	a := NewAnalyzer(src, WindowBlackmanHarris, 1024, 10)

	dst := make([]float64, 1024)
	if err := a.Spectrum(dst); err != nil {
		t.Fatal(err)
	}
	if math.Abs(dst[200]-0.5) > 0.02 {
		t.Errorf("peak magnitude = %v, want ~0.5", dst[200])
	}
	// Far from the tone the window suppresses leakage
	if dst[600] > 1e-4 {
		t.Errorf("leakage at bin 600 = %v, want < 1e-4", dst[600])
	}
}

func TestAnalyzerSilence(t *testing.T) {
	a := NewAnalyzer(SilenceSource{Rate: 44100}, WindowBlackmanHarris, 1024, 60)
	dst := make([]float64, 1024)
	for frame := 0; frame < 3; frame++ {
		if err := a.Spectrum(dst); err != nil {
			t.Fatal(err)
		}
	}
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("bin %d = %v, want 0", i, v)
		}
	}
}

func TestAnalyzerRejectsWrongBuffer(t *testing.T) {
	a := NewAnalyzer(SilenceSource{Rate: 44100}, WindowHann, 1024, 60)
	if err := a.Spectrum(make([]float64, 10)); !errors.Is(err, ErrSpectrumSize) {
		t.Errorf("error = %v, want ErrSpectrumSize", err)
	}
}

func writeTestWAV(t *testing.T, rate, channels int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenWAVDownmix(t *testing.T) {
	// Two stereo frames: (16384, 0) and (-32768, -32768)
	path := writeTestWAV(t, 8000, 2, []int{16384, 0, -32768, -32768})

	src, err := OpenWAV(path, false)
	if err != nil {
		t.Fatalf("OpenWAV error: %v", err)
	}
	if src.SampleRate() != 8000 {
		t.Errorf("sample rate = %d, want 8000", src.SampleRate())
	}
	if src.Len() != 2 {
		t.Fatalf("frames = %d, want 2", src.Len())
	}

	dst := make([]float64, 4)
	n, err := src.Read(dst)
	if !errors.Is(err, io.EOF) {
		t.Errorf("non-looping read past end: error = %v, want io.EOF", err)
	}
	if n != 2 {
		t.Fatalf("read %d samples, want 2", n)
	}
	if math.Abs(dst[0]-0.25) > 1e-9 || math.Abs(dst[1]+1) > 1e-9 {
		t.Errorf("samples = %v, want [0.25 -1]", dst[:2])
	}
}

func TestWAVSourceLoops(t *testing.T) {
	path := writeTestWAV(t, 8000, 1, []int{100, 200, 300})
	src, err := OpenWAV(path, true)
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]float64, 7)
	n, err := src.Read(dst)
	if err != nil || n != 7 {
		t.Fatalf("Read = (%d, %v), want (7, nil)", n, err)
	}
	if dst[3] != dst[0] || dst[6] != dst[0] {
		t.Errorf("loop did not wrap: %v", dst)
	}
}

func TestAnalyzerPassesEOF(t *testing.T) {
	path := writeTestWAV(t, 8000, 1, []int{16384, 16384, 16384})
	src, err := OpenWAV(path, false)
	if err != nil {
		t.Fatal(err)
	}

	a := NewAnalyzer(src, WindowHann, 256, 60)
	dst := make([]float64, 256)
	if err := a.Spectrum(dst); !errors.Is(err, io.EOF) {
		t.Fatalf("first frame error = %v, want io.EOF", err)
	}
	if !a.Ended() {
		t.Error("analyzer should report ended")
	}

	// The partial hop is still analyzed
	var sum float64
	for _, v := range dst {
		sum += v
	}
	if sum == 0 {
		t.Error("final partial hop produced an all-zero spectrum")
	}
}

func TestOpenWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF data"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenWAV(path, false); !errors.Is(err, ErrNotWAV) {
		t.Errorf("error = %v, want ErrNotWAV", err)
	}
}

func TestToneSourceDeterministic(t *testing.T) {
	tones := []Tone{{Frequency: 440, Amplitude: 0.5, Sweep: 10}}
	a := NewToneSource(44100, tones, 0.01, 7)
	b := NewToneSource(44100, tones, 0.01, 7)

	da, db := make([]float64, 512), make([]float64, 512)
	a.Read(da)
	b.Read(db)
	for i := range da {
		if da[i] != db[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, da[i], db[i])
		}
	}
}
