package denoise

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
	"github.com/cwbudde/algo-denoise/dsp/stft"
)

// SubtractMagnitudes replaces every bin X of every frame, in place, with
// max(|X| - profile[k], 0) * exp(i*arg(X)). Phase is never modified.
func SubtractMagnitudes(frames [][]complex128, profile []float64) error {
	for f, frame := range frames {
		if len(frame) != len(profile) {
			return fmt.Errorf("%w: frame %d has %d bins, profile has %d",
				ErrProfileMismatch, f, len(frame), len(profile))
		}
	}

	mag := make([]float64, len(profile))
	phase := make([]float64, len(profile))

	for _, frame := range frames {
		spectrum.PolarInto(mag, phase, frame)

		for k := range frame {
			mag[k] = max(mag[k]-profile[k], 0)
		}

		spectrum.FromPolar(frame, mag, phase)
	}

	return nil
}

// Subtract removes profile from samples by spectral subtraction and
// returns a new slice of len(samples) samples whose first
// cfg.MarginSamples() values are zero.
func Subtract(samples, profile []float64, cfg Config) ([]float64, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	tr, err := cfg.newTransform()
	if err != nil {
		return nil, err
	}

	err = checkProfile(profile, tr.Bins())
	if err != nil {
		return nil, err
	}

	err = checkFinite("samples", samples)
	if err != nil {
		return nil, err
	}

	return subtract(tr, samples, profile, cfg.MarginSamples())
}

func subtract(tr *stft.Transform, samples, profile []float64, margin int) ([]float64, error) {
	frames, err := tr.Forward(samples)
	if err != nil {
		return nil, fmt.Errorf("denoise: signal: %w", err)
	}

	err = SubtractMagnitudes(frames, profile)
	if err != nil {
		return nil, err
	}

	reconstructed, err := tr.Inverse(frames)
	if err != nil {
		return nil, fmt.Errorf("denoise: reconstruct: %w", err)
	}

	out := FixLength(reconstructed, len(samples))
	clear(out[:min(margin, len(out))])

	return out, nil
}

// FixLength returns in truncated or zero-padded at the tail to n samples.
// The result never aliases in.
func FixLength(in []float64, n int) []float64 {
	out := make([]float64, max(n, 0))
	copy(out, in)

	return out
}
