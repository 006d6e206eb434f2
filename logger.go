package glf

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for glf and its sub-packages.
// By default glf produces no log output. Pass nil to restore the silent default.
//
// Compile and link diagnostics are not routed through the logger; they are
// written to [BuildConfig.Diagnostics] with fixed message templates.
//
// Log levels used by glf:
//   - [slog.LevelDebug]: per-frame draw stats, shader sources compiled, buffer uploads
//   - [slog.LevelInfo]: programs linked, textures loaded, shader reloads
//   - [slog.LevelWarn]: missing shader sources, unknown atlas regions
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by glf.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
