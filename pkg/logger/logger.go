// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	std *logrus.Logger
)

// Init configures the shared logger. format is "json" or "text".
func Init(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("Invalid log level, using INFO")
	}

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	mu.Lock()
	std = log
	mu.Unlock()
	return log
}

// Get returns the shared logger, initializing it with defaults if needed.
func Get() *logrus.Logger {
	mu.RLock()
	log := std
	mu.RUnlock()
	if log == nil {
		return Init("info", "json")
	}
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// WithComponent tags entries with the emitting component.
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}

// WithGame tags entries with a contest id.
func WithGame(gameID string) *logrus.Entry {
	return Get().WithField("game_id", gameID)
}

// WithRun tags entries with a crawl or rating run id.
func WithRun(runID string) *logrus.Entry {
	return Get().WithField("run_id", runID)
}
