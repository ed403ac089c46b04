// Package config loads denoiser parameters and logging settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-denoise/dsp/denoise"
	"github.com/cwbudde/algo-denoise/dsp/stft"
	"github.com/cwbudde/algo-denoise/dsp/window"
)

// Config is the top-level YAML document.
type Config struct {
	Denoise DenoiseConfig `yaml:"denoise"`
	Logging LoggingConfig `yaml:"logging"`
}

// DenoiseConfig mirrors [denoise.Config] minus the sample rate, which
// always comes from the decoded audio.
type DenoiseConfig struct {
	FrameLen      int     `yaml:"frame_len"`
	HopLen        int     `yaml:"hop_len"`
	NoiseDuration float64 `yaml:"noise_duration"` // seconds
	MarginMs      float64 `yaml:"margin_ms"`
	Window        string  `yaml:"window"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := denoise.DefaultConfig()

	return &Config{
		Denoise: DenoiseConfig{
			FrameLen:      d.FrameLen,
			HopLen:        d.HopLen,
			NoiseDuration: d.NoiseDuration,
			MarginMs:      d.MarginMs,
			Window:        d.Window.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default] and validates the
// result. Keys missing from the document keep their defaults; unknown keys
// are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	d := cfg.Denoise
	if d.FrameLen <= 0 {
		errs = append(errs, fmt.Errorf("denoise.frame_len must be > 0, got %d", d.FrameLen))
	} else if !stft.ValidFrameLen(d.FrameLen) {
		errs = append(errs, fmt.Errorf("denoise.frame_len must be a power of two, got %d", d.FrameLen))
	}
	if d.HopLen <= 0 {
		errs = append(errs, fmt.Errorf("denoise.hop_len must be > 0, got %d", d.HopLen))
	} else if d.FrameLen > 0 && d.HopLen > d.FrameLen {
		errs = append(errs, fmt.Errorf("denoise.hop_len %d exceeds denoise.frame_len %d", d.HopLen, d.FrameLen))
	}
	if !(d.NoiseDuration > 0) {
		errs = append(errs, fmt.Errorf("denoise.noise_duration must be > 0, got %v", d.NoiseDuration))
	}
	if !(d.MarginMs >= 0) {
		errs = append(errs, fmt.Errorf("denoise.margin_ms must be >= 0, got %v", d.MarginMs))
	}
	if _, err := window.ParseType(d.Window); err != nil {
		errs = append(errs, fmt.Errorf("denoise.window: %w", err))
	}

	if err := cfg.Logging.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// DenoiseOptions converts the file settings into [denoise.Option]s.
func (c *Config) DenoiseOptions() ([]denoise.Option, error) {
	win, err := window.ParseType(c.Denoise.Window)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return []denoise.Option{
		denoise.WithFrameLen(c.Denoise.FrameLen),
		denoise.WithHopLen(c.Denoise.HopLen),
		denoise.WithNoiseDuration(c.Denoise.NoiseDuration),
		denoise.WithMarginMs(c.Denoise.MarginMs),
		denoise.WithWindow(win),
	}, nil
}
