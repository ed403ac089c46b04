package denoise

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is the output of one enhance call.
type Result struct {
	// Samples is the denoised signal, same length as the input.
	Samples []float64
	// Profile is the estimated noise magnitude per frequency bin.
	Profile []float64
}

// Enhance estimates the noise profile from the leading noise reference of
// samples and subtracts it from the whole signal.
func Enhance(samples []float64, cfg Config) (Result, error) {
	err := cfg.Validate()
	if err != nil {
		return Result{}, err
	}

	err = checkFinite("samples", samples)
	if err != nil {
		return Result{}, err
	}

	tr, err := cfg.newTransform()
	if err != nil {
		return Result{}, err
	}

	profile, err := estimateProfile(tr, samples[:min(cfg.NoiseSamples(), len(samples))])
	if err != nil {
		return Result{}, err
	}

	out, err := subtract(tr, samples, profile, cfg.MarginSamples())
	if err != nil {
		return Result{}, err
	}

	return Result{Samples: out, Profile: profile}, nil
}

// EnhanceChannels runs [Enhance] on every channel independently, each with
// its own noise profile. Channels are processed concurrently. The first
// failure cancels channels that have not started yet, as does cancelling
// ctx.
func EnhanceChannels(ctx context.Context, channels [][]float64, cfg Config) ([]Result, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(channels))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, samples := range channels {
		g.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err
			}

			res, err := Enhance(samples, cfg)
			if err != nil {
				return fmt.Errorf("denoise: channel %d: %w", i, err)
			}

			results[i] = res

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}
