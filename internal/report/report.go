// Package report renders noise profiles as tab-aligned text tables.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// minLevel bounds the dB column for bins with zero magnitude.
const minLevel = 1e-12

var errEmptyProfile = errors.New("report: empty profile")

// BinFrequency returns the center frequency in Hz of rfft bin k for a frame
// of frameLen samples at sampleRate.
func BinFrequency(k, sampleRate, frameLen int) float64 {
	return float64(k) * float64(sampleRate) / float64(frameLen)
}

// Level converts a linear magnitude to dBFS.
func Level(mag float64) float64 {
	return 20 * math.Log10(math.Max(mag, minLevel))
}

// WriteProfile prints one row per bin: index, center frequency, magnitude
// and level. Every step-th bin is printed; step <= 1 prints all of them.
func WriteProfile(w io.Writer, profile []float64, sampleRate, frameLen, step int) error {
	if len(profile) == 0 {
		return errEmptyProfile
	}
	if sampleRate <= 0 || frameLen <= 0 {
		return fmt.Errorf("report: invalid geometry sample rate %d, frame %d", sampleRate, frameLen)
	}
	if step < 1 {
		step = 1
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Bin\tFreq [Hz]\tMagnitude\tLevel [dB]\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---\t---------\t---------\t----------\n"); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for k := 0; k < len(profile); k += step {
		if _, err := fmt.Fprintf(tw, "%d\t%.1f\t%.6g\t%.2f\n",
			k,
			BinFrequency(k, sampleRate, frameLen),
			profile[k],
			Level(profile[k]),
		); err != nil {
			return fmt.Errorf("report: write row %d: %w", k, err)
		}
	}

	return tw.Flush()
}
