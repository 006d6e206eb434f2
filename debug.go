package glf

import (
	"context"
	"log/slog"
	"time"
)

// FrameStats holds per-frame draw metrics collected by the Renderer.
type FrameStats struct {
	DrawCalls   int
	VertexBytes int
	IndexBytes  int
	Glyphs      int
	FrameTime   time.Duration
}

// debugLog reports the frame's stats at debug level. Skipped entirely when
// the logger is not enabled for debug.
func debugLog(stats FrameStats) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("glf: frame",
		"draws", stats.DrawCalls,
		"vertex_bytes", stats.VertexBytes,
		"index_bytes", stats.IndexBytes,
		"glyphs", stats.Glyphs,
		"frame_time", stats.FrameTime)
}
