// Package logger configures zerolog for the dashboard API. Output is JSON
// by default; pretty console output is for local development only.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level  string // trace, debug, info, warn, error
	Pretty bool   // Enable pretty console output
}

// New creates a new structured logger and sets the global level
func New(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// parseLevel maps a level name to a zerolog level. Unknown or empty names
// fall back to info rather than erroring: a bad LOG_LEVEL should never stop
// the server from starting.
func parseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// SetGlobalLogger installs l as zerolog's package-level logger, so code
// logging through zerolog/log shares the same output and fields.
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}
