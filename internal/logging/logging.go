// Package logging builds the logrus loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/finplan/internal/config"
)

// New returns a logger writing to out with the configured level and format.
// An unknown level falls back to info.
func New(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: out != os.Stderr})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// NewFile returns a logger appending to cfg.File, or to finplan.log in the
// cache directory when no file is configured. Close the returned file when
// done.
func NewFile(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		path = filepath.Join(config.CacheDir(), "finplan.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // path is user configured
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(cfg, f), f, nil
}
