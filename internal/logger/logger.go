// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const service = "peoplehub"

// Logger mirrors zlog.Logger after Setup.
var Logger zerolog.Logger

type Options struct {
	Level  string // zerolog level name, default info
	Format string // "json" or "console", default console
}

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter reads LOG_LEVEL and LOG_FORMAT from the environment.
func InitWithWriter(w io.Writer) {
	Setup(w, Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})
}

// Setup replaces both Logger and the global zlog.Logger.
func Setup(w io.Writer, opts Options) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.DurationFieldUnit = time.Millisecond

	out := w
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	Logger = zerolog.New(out).Level(level).With().Timestamp().Str("service", service).Logger()
	zlog.Logger = Logger
}

// Component tags entries from a long-running subsystem (scheduler, mailer).
func Component(name string) zerolog.Logger {
	return zlog.Logger.With().Str("component", name).Logger()
}
