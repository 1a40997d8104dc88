package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures logger construction
type Options struct {
	Verbose bool
	Format  string // "console" or "json"
	Out     io.Writer
}

// New builds a logger. Verbose enables debug output, which is where ffmpeg
// command lines and stderr end up.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// WithComponent creates a logger with a component field
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
