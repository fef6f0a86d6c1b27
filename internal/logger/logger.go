// =============================================================================
// OpenSong to ProPresenter - Logger
// =============================================================================
//
// Structured logging for the converter, backed by charmbracelet/log.
// Console progress ("Processing: ...") is NOT logging; it is written by the
// batch driver straight to the command output. The logger carries the
// diagnostic detail behind it and writes to stderr by default.
//
// =============================================================================

package logger

import (
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the logging interface used across the converter.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// Options configures New.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Unknown values
	// fall back to "info".
	Level string

	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer

	// Prefix is shown before every message.
	Prefix string
}

type charmLogger struct {
	l *charmlog.Logger
}

// New returns a Logger writing text lines through charmbracelet/log.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	l := charmlog.NewWithOptions(out, charmlog.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	l.SetFormatter(charmlog.TextFormatter)
	return &charmLogger{l: l}
}

// ParseLevel maps a level name to a charmbracelet/log level.
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
