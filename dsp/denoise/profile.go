package denoise

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
	"github.com/cwbudde/algo-denoise/dsp/stft"
)

// EstimateProfile returns the per-bin mean STFT magnitude of the first
// cfg.NoiseSamples() samples. If samples is shorter than that, all of it
// is used. The reference must hold at least one full frame.
func EstimateProfile(samples []float64, cfg Config) ([]float64, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	tr, err := cfg.newTransform()
	if err != nil {
		return nil, err
	}

	reference := samples[:min(cfg.NoiseSamples(), len(samples))]

	err = checkFinite("samples", reference)
	if err != nil {
		return nil, err
	}

	return estimateProfile(tr, reference)
}

func estimateProfile(tr *stft.Transform, reference []float64) ([]float64, error) {
	frames, err := tr.Forward(reference)
	if err != nil {
		return nil, fmt.Errorf("denoise: noise reference: %w", err)
	}

	profile := make([]float64, tr.Bins())
	mag := make([]float64, tr.Bins())

	for _, frame := range frames {
		spectrum.MagnitudeInto(mag, frame)
		vecmath.AddBlockInPlace(profile, mag)
	}

	vecmath.ScaleBlock(profile, profile, 1/float64(len(frames)))

	return profile, nil
}
