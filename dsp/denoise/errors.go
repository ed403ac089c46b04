package denoise

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/stft"
)

var (
	// ErrInsufficientData reports an input or noise reference shorter than
	// one frame.
	ErrInsufficientData = stft.ErrInsufficientData
	// ErrInvalidParameter reports an unusable Config or non-finite input.
	ErrInvalidParameter = stft.ErrInvalidParameter
	// ErrProfileMismatch reports a noise profile whose length is not
	// FrameLen/2 + 1.
	ErrProfileMismatch = errors.New("denoise: noise profile does not match frame bins")
)

func checkFinite(what string, data []float64) error {
	for i, v := range data {
		if !isFinite(v) {
			return fmt.Errorf("%w: %s[%d] is not finite: %v", ErrInvalidParameter, what, i, v)
		}
	}

	return nil
}

func checkProfile(profile []float64, bins int) error {
	if len(profile) != bins {
		return fmt.Errorf("%w: got %d values, want %d", ErrProfileMismatch, len(profile), bins)
	}

	return checkFinite("profile", profile)
}
