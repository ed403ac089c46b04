package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBinFrequency(t *testing.T) {
	if got := BinFrequency(0, 44100, 2048); got != 0 {
		t.Fatalf("bin 0 = %v, want 0", got)
	}
	if got := BinFrequency(1024, 44100, 2048); got != 22050 {
		t.Fatalf("nyquist bin = %v, want 22050", got)
	}
}

func TestLevel(t *testing.T) {
	if got := Level(1); got != 0 {
		t.Fatalf("Level(1) = %v, want 0", got)
	}
	if got := Level(0.1); got < -20.000001 || got > -19.999999 {
		t.Fatalf("Level(0.1) = %v, want -20", got)
	}
	if got := Level(0); got != -240 {
		t.Fatalf("Level(0) = %v, want -240", got)
	}
}

func TestWriteProfile(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProfile(&buf, []float64{1, 0.1, 0.01, 0}, 8000, 6, 1); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Bin") || !strings.Contains(lines[0], "Level [dB]") {
		t.Fatalf("unexpected header %q", lines[0])
	}

	fields := strings.Fields(lines[3])
	want := []string{"1", "1333.3", "0.1", "-20.00"}
	if strings.Join(fields, " ") != strings.Join(want, " ") {
		t.Fatalf("row 1 = %v, want %v", fields, want)
	}
}

func TestWriteProfileStep(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProfile(&buf, make([]float64, 10), 8000, 18, 4); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}

	// header, rule, bins 0 4 8
	if got := strings.Count(buf.String(), "\n"); got != 5 {
		t.Fatalf("got %d lines, want 5", got)
	}
}

func TestWriteProfileErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteProfile(&buf, nil, 8000, 256, 1); !errors.Is(err, errEmptyProfile) {
		t.Fatalf("empty profile err = %v", err)
	}
	if err := WriteProfile(&buf, []float64{1}, 0, 256, 1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
