// Package logx configures the package-wide logrus logger used across the
// solver, CLIs, and benchmark harness.
package logx

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup returns a *logrus.Logger configured from the LOGLEVEL environment
// variable (DEBUG, INFO, WARN, ERROR; default INFO), matching the original
// Python implementation's logger.py.
func Setup() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(levelFromEnv(os.Getenv("LOGLEVEL")))
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

func levelFromEnv(raw string) logrus.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "":
		return logrus.InfoLevel
	default:
		return logrus.InfoLevel
	}
}

// Disabled returns a logger that discards everything, used as the solver's
// default when Options.Logger is nil so that logging has zero cost unless a
// caller opts in.
func Disabled() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	logger.SetOutput(discard{})
	return logger
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
