// Package rtlog builds the structured logger used throughout the
// server, a thin wrapper around zerolog so every package depends on
// *zerolog.Logger rather than on viper or os.Stdout directly.
package rtlog

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-rendered zerolog logger at the given level
// (debug, info, warn, error; unrecognized strings fall back to info).
func New(level string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(output).Level(parseLevel(level)).With().Timestamp().Logger()
	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
