package spectrum

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func constantSpectrum(n int, v float64) []float64 {
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = v
	}
	return raw
}

func TestOutputLengthForDivisors(t *testing.T) {
	for w := 1; w <= Size; w *= 2 {
		r, err := NewReducer(Options{BandWidth: w, LogOffset: DefaultLogOffset})
		if err != nil {
			t.Fatalf("width %d: unexpected error %v", w, err)
		}
		if r.BandCount() != Size/w {
			t.Errorf("width %d: band count %d, want %d", w, r.BandCount(), Size/w)
		}
		bands := r.NewBandArray()
		if _, err := r.Reduce(constantSpectrum(Size, 0.5), bands); err != nil {
			t.Fatalf("width %d: reduce error %v", w, err)
		}
		if bands.Len() != Size/w {
			t.Errorf("width %d: output length %d, want %d", w, bands.Len(), Size/w)
		}
	}
}

func TestConstantInput(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		width int
	}{
		{"unit magnitude", 1.0, 32},
		{"small magnitude", 1e-4, 32},
		{"typical spectrum level", 0.0025, 16},
		{"single bin bands", 0.3, 1},
		{"one band", 2.0, Size},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReducer(Options{BandWidth: tt.width, LogOffset: DefaultLogOffset})
			if err != nil {
				t.Fatal(err)
			}
			bands := r.NewBandArray()
			rep, err := r.Reduce(constantSpectrum(Size, tt.value), bands)
			if err != nil {
				t.Fatal(err)
			}
			if rep.Err() != nil {
				t.Fatalf("unexpected report error: %v", rep.Err())
			}
			want := math.Log10(tt.value) + 7
			for i, got := range bands {
				if math.Abs(got-want) > tolerance {
					t.Errorf("band %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestBandMeanUsesContiguousBins(t *testing.T) {
	r, err := NewReducer(Options{BandWidth: 4, LogOffset: DefaultLogOffset})
	if err != nil {
		t.Fatal(err)
	}
	raw := make([]float64, Size)
	// Band 1 covers bins 4..7
	raw[4], raw[5], raw[6], raw[7] = 1, 2, 3, 4
	raw[8] = 100 // belongs to band 2

	bands := r.NewBandArray()
	if _, err := r.Reduce(raw, bands); err != nil {
		t.Fatal(err)
	}
	want := math.Log10(2.5) + 7
	if math.Abs(bands[1]-want) > tolerance {
		t.Errorf("band 1 = %v, want %v", bands[1], want)
	}
	want = math.Log10(25) + 7
	if math.Abs(bands[2]-want) > tolerance {
		t.Errorf("band 2 = %v, want %v", bands[2], want)
	}
}

// Silent bands reduce to -Inf; the value is kept and reported.
func TestZeroInputIsNonFinite(t *testing.T) {
	r, err := NewReducer(Options{BandWidth: 32, LogOffset: DefaultLogOffset})
	if err != nil {
		t.Fatal(err)
	}
	bands := r.NewBandArray()
	rep, err := r.Reduce(make([]float64, Size), bands)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range bands {
		if !math.IsInf(v, -1) {
			t.Errorf("band %d = %v, want -Inf", i, v)
		}
	}
	if len(rep.NonFinite) != 32 {
		t.Errorf("non-finite count = %d, want 32", len(rep.NonFinite))
	}
	if !errors.Is(rep.Err(), ErrNonFiniteBand) {
		t.Errorf("report error = %v, want ErrNonFiniteBand", rep.Err())
	}
}

func TestPartialBandTruncates(t *testing.T) {
	r, err := NewReducer(Options{BandWidth: 100, LogOffset: DefaultLogOffset})
	if !errors.Is(err, ErrPartialBand) {
		t.Fatalf("NewReducer error = %v, want ErrPartialBand", err)
	}
	if r == nil {
		t.Fatal("expected usable reducer alongside ErrPartialBand")
	}
	if r.BandCount() != 10 {
		t.Fatalf("band count = %d, want 10", r.BandCount())
	}

	raw := constantSpectrum(Size, 1)
	// The trailing 24 bins are discarded
	for i := 1000; i < Size; i++ {
		raw[i] = 0
	}
	bands := r.NewBandArray()
	rep, err := r.Reduce(raw, bands)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Err() != nil {
		t.Errorf("remainder bins leaked into bands: %v", rep.Err())
	}
}

func TestInvalidBandWidth(t *testing.T) {
	for _, w := range []int{0, -1, Size + 1} {
		if _, err := NewReducer(Options{BandWidth: w}); !errors.Is(err, ErrInvalidBandWidth) {
			t.Errorf("width %d: error = %v, want ErrInvalidBandWidth", w, err)
		}
	}
}

func TestReduceRejectsWrongLengths(t *testing.T) {
	r, err := NewReducer(Options{BandWidth: 32, LogOffset: DefaultLogOffset})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Reduce(make([]float64, 512), r.NewBandArray()); !errors.Is(err, ErrSpectrumLength) {
		t.Errorf("short spectrum: error = %v, want ErrSpectrumLength", err)
	}
	if _, err := r.Reduce(make([]float64, Size), make(BandArray, 4)); !errors.Is(err, ErrSpectrumLength) {
		t.Errorf("short band array: error = %v, want ErrSpectrumLength", err)
	}
}

func TestReduceOverwritesInPlace(t *testing.T) {
	r, err := NewReducer(Options{BandWidth: 32, LogOffset: DefaultLogOffset})
	if err != nil {
		t.Fatal(err)
	}
	bands := r.NewBandArray()
	if _, err := r.Reduce(constantSpectrum(Size, 1), bands); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Reduce(constantSpectrum(Size, 10), bands); err != nil {
		t.Fatal(err)
	}
	for i, v := range bands {
		if math.Abs(v-8) > tolerance {
			t.Errorf("band %d = %v after second frame, want 8", i, v)
		}
	}
}
