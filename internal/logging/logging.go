// Package logging builds the process logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"solana-address-checker/internal/config"
)

// New creates a JSON logrus logger from cfg.
// Output goes to a rotated file when cfg.File is set, stdout otherwise,
// and nowhere when logging is disabled.
func New(cfg config.Logging) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetReportCaller(false)

	switch {
	case !cfg.Enabled:
		logger.SetOutput(io.Discard)
	case cfg.File != "":
		logger.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     30,
			Compress:   true,
		})
	default:
		logger.SetOutput(os.Stdout)
	}

	logger.SetLevel(ParseLevel(cfg.Level))
	return logger
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(name string) logrus.Level {
	switch name {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
