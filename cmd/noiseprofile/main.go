// Command noiseprofile prints the noise profile estimated from the start of
// a WAV file.
//
// Usage:
//
//	noiseprofile [flags] input.wav
//
// Examples:
//
//	noiseprofile noisy.wav
//	noiseprofile -frame 1024 -hop 256 -noise-duration 1 noisy.wav
//	noiseprofile -channel 1 -step 8 -summary noisy.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-denoise/dsp/denoise"
	"github.com/cwbudde/algo-denoise/dsp/window"
	"github.com/cwbudde/algo-denoise/internal/report"
	"github.com/cwbudde/algo-denoise/internal/wavio"
	"github.com/cwbudde/algo-denoise/stats/profile"
)

var errUsage = errors.New("expected one input WAV path")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	def := denoise.DefaultConfig()

	fs := flag.NewFlagSet("noiseprofile", flag.ContinueOnError)
	fs.SetOutput(stdout)
	frameLen := fs.Int("frame", def.FrameLen, "STFT frame length in samples")
	hopLen := fs.Int("hop", def.HopLen, "STFT hop length in samples")
	noiseDur := fs.Float64("noise-duration", def.NoiseDuration, "leading noise reference in seconds")
	win := fs.String("window", def.Window.String(), "analysis window (hann, hamming, blackman, rectangular)")
	channel := fs.Int("channel", 0, "channel index to analyze")
	step := fs.Int("step", 1, "print every n-th bin")
	summary := fs.Bool("summary", false, "print a spectral shape summary after the table")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: noiseprofile [flags] input.wav\n\n")
		fmt.Fprintf(fs.Output(), "Prints the per-bin noise magnitude of the leading noise reference.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	wt, err := window.ParseType(*win)
	if err != nil {
		return err
	}

	audio, err := wavio.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if *channel < 0 || *channel >= len(audio.Channels) {
		return fmt.Errorf("channel %d out of range, file has %d", *channel, len(audio.Channels))
	}

	cfg := denoise.NewConfig(
		denoise.WithSampleRate(audio.SampleRate),
		denoise.WithFrameLen(*frameLen),
		denoise.WithHopLen(*hopLen),
		denoise.WithNoiseDuration(*noiseDur),
		denoise.WithWindow(wt),
	)

	prof, err := denoise.EstimateProfile(audio.Channels[*channel], cfg)
	if err != nil {
		return err
	}

	if err := report.WriteProfile(stdout, prof, audio.SampleRate, cfg.FrameLen, *step); err != nil {
		return err
	}
	if !*summary {
		return nil
	}

	s := profile.Summarize(prof, float64(audio.SampleRate), cfg.FrameLen)
	_, err = fmt.Fprintf(stdout, "\nmean %.2f dB, peak bin %d (%.1f Hz), centroid %.1f Hz, rolloff %.1f Hz, flatness %.4f\n",
		s.Mean_dB, s.PeakBin, s.PeakFreq, s.Centroid, s.Rolloff, s.Flatness)
	return err
}
