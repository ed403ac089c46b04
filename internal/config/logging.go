package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// LoggingConfig selects the CLI log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (l LoggingConfig) validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if l.Format != FormatText && l.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("logging.format %q is invalid; valid values: text, json", l.Format))
	}
	return errors.Join(errs...)
}

// Configure applies level and formatter to logger.
func (l LoggingConfig) Configure(logger *logrus.Logger) error {
	if err := l.validate(); err != nil {
		return err
	}

	level, _ := logrus.ParseLevel(l.Level)
	logger.SetLevel(level)

	if l.Format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}
