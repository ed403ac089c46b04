// Command denoise removes stationary background noise from a WAV file by
// spectral subtraction.
//
// Usage:
//
//	denoise [flags] input.wav output.wav
//
// The noise profile of each channel is estimated from its first
// -noise-duration seconds. Flags override values from -config, which
// override the built-in defaults.
//
// Examples:
//
//	denoise noisy.wav clean.wav
//	denoise -frame 1024 -hop 256 -noise-duration 1 noisy.wav clean.wav
//	denoise -config denoise.yaml -profile noisy.wav clean.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-denoise/dsp/denoise"
	"github.com/cwbudde/algo-denoise/internal/config"
	"github.com/cwbudde/algo-denoise/internal/report"
	"github.com/cwbudde/algo-denoise/internal/wavio"
	"github.com/cwbudde/algo-denoise/stats/level"
	"github.com/cwbudde/algo-denoise/stats/profile"
)

const maxLogDB = 240

var errUsage = errors.New("expected input and output WAV paths")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := logrus.New()
	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.WithError(err).Error("denoise failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *logrus.Logger) error {
	fs := flag.NewFlagSet("denoise", flag.ContinueOnError)
	fs.SetOutput(stdout)

	configPath := fs.String("config", "", "YAML configuration file")
	frameLen := fs.Int("frame", 0, "STFT frame length in samples")
	hopLen := fs.Int("hop", 0, "STFT hop length in samples")
	noiseDur := fs.Float64("noise-duration", 0, "leading noise reference in seconds")
	margin := fs.Float64("margin", 0, "leading output samples to zero, in milliseconds")
	win := fs.String("window", "", "analysis window (hann, hamming, blackman, rectangular)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	format := fs.String("log-format", "", "log format (text, json)")
	showProfile := fs.Bool("profile", false, "print the estimated noise profile of each channel")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: denoise [flags] input.wav output.wav\n\n")
		fmt.Fprintf(fs.Output(), "Removes stationary noise estimated from the start of the recording.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frame":
			cfg.Denoise.FrameLen = *frameLen
		case "hop":
			cfg.Denoise.HopLen = *hopLen
		case "noise-duration":
			cfg.Denoise.NoiseDuration = *noiseDur
		case "margin":
			cfg.Denoise.MarginMs = *margin
		case "window":
			cfg.Denoise.Window = *win
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *format
		}
	})
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := cfg.Logging.Configure(logger); err != nil {
		return err
	}

	opts, err := cfg.DenoiseOptions()
	if err != nil {
		return err
	}

	audio, err := wavio.ReadFile(inPath)
	if err != nil {
		return err
	}

	log := logger.WithFields(logrus.Fields{
		"input":       inPath,
		"channels":    len(audio.Channels),
		"sample_rate": audio.SampleRate,
		"bit_depth":   audio.BitDepth,
		"samples":     audio.Frames(),
		"duration":    audio.Duration(),
	})
	log.Info("decoded input")

	dcfg := denoise.NewConfig(append(opts, denoise.WithSampleRate(audio.SampleRate))...)
	log.WithFields(logrus.Fields{
		"frame_len":      dcfg.FrameLen,
		"hop_len":        dcfg.HopLen,
		"noise_duration": dcfg.NoiseDuration,
		"margin_ms":      dcfg.MarginMs,
		"window":         dcfg.Window.String(),
	}).Debug("denoise parameters")

	start := time.Now()
	results, err := denoise.EnhanceChannels(ctx, audio.Channels, dcfg)
	if err != nil {
		return err
	}

	// Reduction is measured on the noise reference past the zeroed margin.
	refStart := min(dcfg.MarginSamples(), audio.Frames())
	refEnd := max(refStart, min(dcfg.NoiseSamples(), audio.Frames()))

	for i, res := range results {
		summary := profile.Summarize(res.Profile, float64(audio.SampleRate), dcfg.FrameLen)
		out := level.Measure(res.Samples)
		log.WithFields(logrus.Fields{
			"channel":            i,
			"noise_reduction_db": clampDB(level.Reduction(audio.Channels[i][refStart:refEnd], res.Samples[refStart:refEnd])),
			"output_rms_db":      clampDB(out.RMS_dB),
			"output_peak_db":     clampDB(out.Peak_dB),
			"output_crest":       out.CrestFactor,
			"output_dc":          out.DC,
			"noise_mean_db":      clampDB(summary.Mean_dB),
			"noise_flatness":     summary.Flatness,
			"noise_centroid_hz":  summary.Centroid,
		}).Info("channel denoised")

		audio.Channels[i] = res.Samples
		if *showProfile {
			fmt.Fprintf(stdout, "channel %d\n", i)
			if err := report.WriteProfile(stdout, res.Profile, audio.SampleRate, dcfg.FrameLen, 1); err != nil {
				return err
			}
		}
	}

	if err := wavio.WriteFile(outPath, audio); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"output":  outPath,
		"elapsed": time.Since(start),
	}).Info("wrote denoised output")

	return nil
}

// clampDB keeps infinite levels of silent buffers encodable by the JSON
// formatter.
func clampDB(v float64) float64 {
	return math.Max(-maxLogDB, math.Min(maxLogDB, v))
}
