package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-denoise/dsp/denoise"
	"github.com/cwbudde/algo-denoise/dsp/window"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, 2048, cfg.Denoise.FrameLen)
	assert.Equal(t, 512, cfg.Denoise.HopLen)
	assert.Equal(t, 0.5, cfg.Denoise.NoiseDuration)
	assert.Equal(t, 5.0, cfg.Denoise.MarginMs)
	assert.Equal(t, "hann", cfg.Denoise.Window)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, FormatText, cfg.Logging.Format)
}

func TestLoadFromReaderPartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`
denoise:
  frame_len: 1024
  hop_len: 256
  margin_ms: 0
logging:
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Denoise.FrameLen)
	assert.Equal(t, 256, cfg.Denoise.HopLen)
	assert.Equal(t, 0.0, cfg.Denoise.MarginMs)
	assert.Equal(t, 0.5, cfg.Denoise.NoiseDuration)
	assert.Equal(t, "hann", cfg.Denoise.Window)
	assert.Equal(t, FormatJSON, cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromReaderEmpty(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromReaderUnknownField(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("denoise:\n  frame_size: 1024\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame_size")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader(`
denoise:
  frame_len: 256
  hop_len: 512
  noise_duration: 0
  margin_ms: -1
  window: kaiser
logging:
  level: loud
  format: xml
`))
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"denoise.hop_len 512 exceeds denoise.frame_len 256",
		"denoise.noise_duration",
		"denoise.margin_ms",
		"denoise.window",
		"logging.level",
		"logging.format",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidateNonPositiveFraming(t *testing.T) {
	cfg := Default()
	cfg.Denoise.FrameLen = 0
	cfg.Denoise.HopLen = -4

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denoise.frame_len must be > 0")
	assert.Contains(t, err.Error(), "denoise.hop_len must be > 0")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denoise.yaml")
	require.NoError(t, os.WriteFile(path, []byte("denoise:\n  window: blackman\n  noise_duration: 0.25\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "blackman", cfg.Denoise.Window)
	assert.Equal(t, 0.25, cfg.Denoise.NoiseDuration)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDenoiseOptions(t *testing.T) {
	cfg := Default()
	cfg.Denoise.FrameLen = 256
	cfg.Denoise.HopLen = 64
	cfg.Denoise.NoiseDuration = 0.3
	cfg.Denoise.MarginMs = 2
	cfg.Denoise.Window = "hamming"

	opts, err := cfg.DenoiseOptions()
	require.NoError(t, err)

	got := denoise.NewConfig(append(opts, denoise.WithSampleRate(16000))...)
	assert.Equal(t, denoise.Config{
		SampleRate:    16000,
		FrameLen:      256,
		HopLen:        64,
		NoiseDuration: 0.3,
		MarginMs:      2,
		Window:        window.TypeHamming,
	}, got)

	cfg.Denoise.Window = "nope"
	_, err = cfg.DenoiseOptions()
	require.Error(t, err)
}

func TestValidateNonPowerOfTwoFrame(t *testing.T) {
	cfg := Default()
	cfg.Denoise.FrameLen = 1000
	cfg.Denoise.HopLen = 250

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denoise.frame_len must be a power of two, got 1000")
}

func TestLoggingValidateReportsBothFields(t *testing.T) {
	err := LoggingConfig{Level: "loud", Format: "xml"}.Configure(logrus.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "logging.format")
}

func TestLoggingConfigure(t *testing.T) {
	logger := logrus.New()

	require.NoError(t, LoggingConfig{Level: "debug", Format: FormatJSON}.Configure(logger))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	require.NoError(t, LoggingConfig{Level: "warn", Format: FormatText}.Configure(logger))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)

	assert.Error(t, LoggingConfig{Level: "warn", Format: "yaml"}.Configure(logger))
}
