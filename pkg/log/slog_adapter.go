package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger. Useful for
// development when you want decode activity in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to the given logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or Warn for warnings and
// failures.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}
	if event.UUID != "" {
		attrs = append(attrs, slog.String("uuid", event.UUID))
	}
	if event.Name != "" {
		attrs = append(attrs, slog.String("name", event.Name))
	}
	if event.Size > 0 {
		attrs = append(attrs, slog.Int("size", event.Size))
	}
	if event.Entries > 0 {
		attrs = append(attrs, slog.Int("entries", event.Entries))
	}
	if event.ErrorKind != "" {
		attrs = append(attrs, slog.String("error_kind", event.ErrorKind))
	}

	level := slog.LevelDebug
	if event.Category == CategoryRegistryWarning || (!event.OK && event.ErrorKind != "") {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, event.Message, attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
