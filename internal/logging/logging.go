// Package logging builds the zerolog loggers attached to dynamic objects.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a configuration level name to a zerolog level. The empty
// string and the "off" family disable logging. The second result is false
// for names that are not recognized.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.NoLevel, false
	}
}

// New returns a console logger writing to w at the given level. Unknown or
// disabled levels yield a no-op logger.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok || lvl == zerolog.Disabled || w == nil {
		return zerolog.Nop()
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "dynobj").Logger()
}
