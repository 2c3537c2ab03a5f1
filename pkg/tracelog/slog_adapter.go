package tracelog

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see directive evaluation in
// the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.Int("index", event.Index),
		slog.Int("offset", event.Offset),
		slog.Int("width", event.Width),
		slog.String("outcome", event.Outcome.String()),
	}

	if event.Struct != "" {
		attrs = append(attrs, slog.String("struct", event.Struct))
	}
	if event.Field != "" {
		attrs = append(attrs, slog.String("field", event.Field))
	}
	if len(event.Bytes) > 0 {
		attrs = append(attrs, slog.String("bytes", hex.EncodeToString(event.Bytes)))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "parse", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
