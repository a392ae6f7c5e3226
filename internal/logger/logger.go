// Package logger builds the structured logger shared by the CLI and the
// pipeline.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger. Verbose lowers the level to debug.
func New(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// NewWithWriter creates a logger with a custom writer, mainly for tests.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
