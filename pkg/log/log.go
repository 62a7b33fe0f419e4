// Package log provides the structured logging setup for the estimation
// pipeline, backed by zerolog. Error types in pkg/errors implement
// zerolog.LogObjectMarshaler, so failures logged through this package carry
// their full structured context.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// GetLogger returns a copy of the package-level logger. The copy is returned
// by pointer so level methods, which have pointer receivers, chain directly.
func GetLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// SetLogger replaces the package-level logger. Intended for wiring a
// console writer in demos or a test writer in tests.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// NewConsoleLogger returns a human-readable logger writing to w, used by the
// example binaries.
func NewConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger().Level(level)
}

// WithStage returns the package-level logger annotated with the pipeline
// stage name, so a failed run reports which stage failed.
func WithStage(stage string) *zerolog.Logger {
	l := GetLogger().With().Str("stage", stage).Logger()
	return &l
}
