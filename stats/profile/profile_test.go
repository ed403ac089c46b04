package profile

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSummarizeFlat(t *testing.T) {
	mag := make([]float64, 129)
	for i := range mag {
		mag[i] = 0.01
	}

	s := Summarize(mag, 8000, 256)

	if s.Bins != 129 {
		t.Fatalf("Bins = %d, want 129", s.Bins)
	}
	if !almostEqual(s.Mean, 0.01, 1e-12) || !almostEqual(s.Mean_dB, -40, 1e-9) {
		t.Fatalf("Mean = %v (%v dB), want 0.01 (-40 dB)", s.Mean, s.Mean_dB)
	}
	if !almostEqual(s.Flatness, 1, 1e-12) {
		t.Fatalf("Flatness = %v, want 1", s.Flatness)
	}
	// Uniform weights put the centroid at the mean bin frequency.
	if !almostEqual(s.Centroid, 2000, 1e-9) {
		t.Fatalf("Centroid = %v, want 2000", s.Centroid)
	}
	if s.PeakBin != 0 {
		t.Fatalf("PeakBin = %d, want 0 for a flat profile", s.PeakBin)
	}
}

func TestSummarizeSinglePeak(t *testing.T) {
	mag := make([]float64, 33)
	mag[8] = 1

	s := Summarize(mag, 8000, 64)

	if s.PeakBin != 8 || !almostEqual(s.PeakFreq, 1000, 1e-9) {
		t.Fatalf("peak at bin %d (%v Hz), want 8 (1000 Hz)", s.PeakBin, s.PeakFreq)
	}
	if !almostEqual(s.Centroid, 1000, 1e-9) {
		t.Fatalf("Centroid = %v, want 1000", s.Centroid)
	}
	if !almostEqual(s.Rolloff, 1000, 1e-9) {
		t.Fatalf("Rolloff = %v, want 1000", s.Rolloff)
	}
	if s.Flatness != 0 {
		t.Fatalf("Flatness = %v, want 0", s.Flatness)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 8000, 256)
	if s.Bins != 0 || !math.IsInf(s.Mean_dB, -1) {
		t.Fatalf("unexpected summary %+v", s)
	}

	s = Summarize(make([]float64, 5), 8000, 8)
	if s.Centroid != 0 || s.Rolloff != 0 || s.Flatness != 0 {
		t.Fatalf("silent profile summary %+v", s)
	}
}

func TestFlatnessOrdering(t *testing.T) {
	flat := []float64{0, 1, 1, 1, 1}
	tilted := []float64{0, 1, 0.5, 0.25, 0.125}

	ff, ft := Flatness(flat), Flatness(tilted)
	if !(ff > ft) {
		t.Fatalf("flat %v should exceed tilted %v", ff, ft)
	}
	if ft <= 0 || ft >= 1 {
		t.Fatalf("tilted flatness %v outside (0, 1)", ft)
	}
}
