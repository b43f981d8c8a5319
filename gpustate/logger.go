package gpustate

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records. Enabled returns false so
// callers skip record formatting entirely, making disabled logging
// effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can race with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// Logger returns the current package logger.
func Logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger configures logging for gpustate. By default the package
// produces no log output. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: queued transitions and batch flushes
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}
