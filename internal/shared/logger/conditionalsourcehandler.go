package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// NewConditionalSourceHandler wraps next so that source locations are
// attached only for the given levels. Routine info lines from the sweeper
// and request paths stay compact while warnings and errors keep a file:line
// to chase. The wrapped handler must be built with AddSource disabled.
func NewConditionalSourceHandler(next slog.Handler, levels ...slog.Level) slog.Handler {
	withSource := make(map[slog.Level]bool, len(levels))
	for _, level := range levels {
		withSource[level] = true
	}
	return &conditionalSourceHandler{next: next, withSource: withSource}
}

type conditionalSourceHandler struct {
	next       slog.Handler
	withSource map[slog.Level]bool
}

func (h *conditionalSourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.withSource[r.Level] {
		// Three frames up: this Handle, slog's internal dispatch, the caller.
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		frame, _ := runtime.CallersFrames(pcs[:]).Next()

		r.AddAttrs(slog.Attr{
			Key: slog.SourceKey,
			Value: slog.AnyValue(&slog.Source{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}),
		})
	}
	return h.next.Handle(ctx, r)
}

func (h *conditionalSourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &conditionalSourceHandler{next: h.next.WithAttrs(attrs), withSource: h.withSource}
}

func (h *conditionalSourceHandler) WithGroup(name string) slog.Handler {
	return &conditionalSourceHandler{next: h.next.WithGroup(name), withSource: h.withSource}
}

func (h *conditionalSourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}
