// =============================================================================
// Trade Documents - Logging Module
// =============================================================================
//
// The orchestrators (document batch, marketplace consolidation) take a small
// printf-style Logger so they can be driven from the CLI or from tests
// without caring where the output goes.
//
// The CLI backs it with a log/slog text handler on stderr. Every record of a
// run carries a "run" attribute so the lines of one invocation can be picked
// out of a shared log file.
//
// =============================================================================

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// ParseLevel maps a config log level to a slog level. Unknown values map to
// info; the config layer rejects them before they get here.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a Logger writing slog text records to w.
//
// PARAMETERS:
//   - w: Destination, normally os.Stderr.
//   - level: One of "debug", "info", "warn", "error".
//   - runID: Attached to every record as "run". Omitted when empty.
func New(w io.Writer, level string, runID string) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	l := slog.New(handler)
	if runID != "" {
		l = l.With("run", runID)
	}
	return &slogLogger{l: l}
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) log(level slog.Level, msg string, args ...interface{}) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	s.l.Log(ctx, level, msg)
}

func (s *slogLogger) Debug(msg string, args ...interface{}) { s.log(slog.LevelDebug, msg, args...) }
func (s *slogLogger) Info(msg string, args ...interface{})  { s.log(slog.LevelInfo, msg, args...) }
func (s *slogLogger) Warn(msg string, args ...interface{})  { s.log(slog.LevelWarn, msg, args...) }
func (s *slogLogger) Error(msg string, args ...interface{}) { s.log(slog.LevelError, msg, args...) }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
