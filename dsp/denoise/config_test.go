package denoise

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/window"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SampleRate != 44100 || cfg.FrameLen != 2048 || cfg.HopLen != 512 {
		t.Fatalf("unexpected framing defaults: %+v", cfg)
	}

	if cfg.NoiseDuration != 0.5 || cfg.MarginMs != 5 || cfg.Window != window.TypeHann {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Bins() != 1025 {
		t.Fatalf("Bins=%d want=1025", cfg.Bins())
	}

	if cfg.NoiseSamples() != 22050 {
		t.Fatalf("NoiseSamples=%d want=22050", cfg.NoiseSamples())
	}

	if cfg.MarginSamples() != 220 {
		t.Fatalf("MarginSamples=%d want=220", cfg.MarginSamples())
	}
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithSampleRate(8000),
		WithFrameLen(256),
		WithHopLen(64),
		WithNoiseDuration(0.25),
		WithMarginMs(10),
		WithWindow(window.TypeHamming),
		nil,
	)

	want := Config{
		SampleRate:    8000,
		FrameLen:      256,
		HopLen:        64,
		NoiseDuration: 0.25,
		MarginMs:      10,
		Window:        window.TypeHamming,
	}

	if cfg != want {
		t.Fatalf("cfg=%+v want=%+v", cfg, want)
	}

	if cfg.MarginSamples() != 80 || cfg.NoiseSamples() != 2000 {
		t.Fatalf("MarginSamples=%d NoiseSamples=%d", cfg.MarginSamples(), cfg.NoiseSamples())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero sample rate", WithSampleRate(0)},
		{"negative sample rate", WithSampleRate(-8000)},
		{"zero frame", WithFrameLen(0)},
		{"non power of two frame", WithFrameLen(1000)},
		{"negative hop", WithHopLen(-1)},
		{"hop exceeds frame", WithHopLen(4096)},
		{"zero noise duration", WithNoiseDuration(0)},
		{"nan noise duration", WithNoiseDuration(math.NaN())},
		{"negative margin", WithMarginMs(-1)},
		{"infinite margin", WithMarginMs(math.Inf(1))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewConfig(tc.opt).Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err=%v, want ErrInvalidParameter", err)
			}
		})
	}

	if err := NewConfig(WithMarginMs(0)).Validate(); err != nil {
		t.Fatalf("zero margin must be valid: %v", err)
	}

	if err := NewConfig(WithHopLen(2048)).Validate(); err != nil {
		t.Fatalf("hop equal to frame must be valid: %v", err)
	}
}
