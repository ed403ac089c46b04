package denoise

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-denoise/dsp/stft"
	"github.com/cwbudde/algo-denoise/dsp/window"
)

const (
	defaultSampleRate    = 44100
	defaultFrameLen      = 2048
	defaultHopLen        = 512
	defaultNoiseDuration = 0.5
	defaultMarginMs      = 5.0
)

// Config holds the parameters of one enhance call.
type Config struct {
	// SampleRate is the input's sample rate in Hz. It converts
	// NoiseDuration and MarginMs into sample counts.
	SampleRate int
	// FrameLen is the STFT frame length in samples, a power of two.
	FrameLen int
	// HopLen is the distance between frame starts in samples.
	HopLen int
	// NoiseDuration is the length of the leading noise reference in seconds.
	NoiseDuration float64
	// MarginMs is the length of the zeroed leading margin in milliseconds.
	MarginMs float64
	// Window is the STFT analysis/synthesis window.
	Window window.Type
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 44.1 kHz, 2048/512 framing, a 0.5 s noise
// reference, a 5 ms margin and a Hann window.
func DefaultConfig() Config {
	return Config{
		SampleRate:    defaultSampleRate,
		FrameLen:      defaultFrameLen,
		HopLen:        defaultHopLen,
		NoiseDuration: defaultNoiseDuration,
		MarginMs:      defaultMarginMs,
		Window:        window.TypeHann,
	}
}

// NewConfig applies zero or more options to the default config.
// Values are not checked here; see [Config.Validate].
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate int) Option {
	return func(cfg *Config) { cfg.SampleRate = sampleRate }
}

// WithFrameLen sets the STFT frame length.
func WithFrameLen(frameLen int) Option {
	return func(cfg *Config) { cfg.FrameLen = frameLen }
}

// WithHopLen sets the STFT hop length.
func WithHopLen(hopLen int) Option {
	return func(cfg *Config) { cfg.HopLen = hopLen }
}

// WithNoiseDuration sets the noise reference length in seconds.
func WithNoiseDuration(seconds float64) Option {
	return func(cfg *Config) { cfg.NoiseDuration = seconds }
}

// WithMarginMs sets the zeroed leading margin in milliseconds.
func WithMarginMs(ms float64) Option {
	return func(cfg *Config) { cfg.MarginMs = ms }
}

// WithWindow sets the STFT window.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) { cfg.Window = t }
}

// Validate reports the first invalid parameter, wrapped in
// [ErrInvalidParameter].
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidParameter, c.SampleRate)
	case c.FrameLen <= 0:
		return fmt.Errorf("%w: frame length must be > 0: %d", ErrInvalidParameter, c.FrameLen)
	case !stft.ValidFrameLen(c.FrameLen):
		return fmt.Errorf("%w: frame length must be a power of two: %d", ErrInvalidParameter, c.FrameLen)
	case c.HopLen <= 0:
		return fmt.Errorf("%w: hop length must be > 0: %d", ErrInvalidParameter, c.HopLen)
	case c.HopLen > c.FrameLen:
		return fmt.Errorf("%w: hop length %d exceeds frame length %d", ErrInvalidParameter, c.HopLen, c.FrameLen)
	case !isFinite(c.NoiseDuration) || c.NoiseDuration <= 0:
		return fmt.Errorf("%w: noise duration must be positive and finite: %f", ErrInvalidParameter, c.NoiseDuration)
	case !isFinite(c.MarginMs) || c.MarginMs < 0:
		return fmt.Errorf("%w: margin must be >= 0 and finite: %f", ErrInvalidParameter, c.MarginMs)
	}

	return nil
}

// Bins returns the profile length, FrameLen/2 + 1.
func (c Config) Bins() int { return c.FrameLen/2 + 1 }

// NoiseSamples returns floor(SampleRate * NoiseDuration).
func (c Config) NoiseSamples() int {
	return int(math.Floor(float64(c.SampleRate) * c.NoiseDuration))
}

// MarginSamples returns floor(MarginMs/1000 * SampleRate).
func (c Config) MarginSamples() int {
	return int(math.Floor(c.MarginMs * float64(c.SampleRate) / 1000))
}

func (c Config) newTransform() (*stft.Transform, error) {
	return stft.New(c.FrameLen, c.HopLen, stft.WithWindow(c.Window))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
