package log

import (
	"context"
	"io"
	"log/slog"
)

// stackSuffix is appended to an error attribute's key to name its stack.
const stackSuffix = "_stack"

// TraceHandler wraps an slog.Handler and rewrites error-valued attributes.
// Errors are logged as their message; when verbose is set, errors that
// carry a go-errors stack get an extra "<key>_stack" attribute.
type TraceHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// verbose enables stack attributes.
	verbose bool
}

// NewTraceHandler creates a new TraceHandler wrapping the given handler.
// If handler is nil, the returned TraceHandler will use slog.Default().Handler().
func NewTraceHandler(handler slog.Handler, verbose bool) *TraceHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &TraceHandler{handler: handler, verbose: verbose}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.rewriteAttr(a)...)
		return true
	})
	return h.handler.Handle(ctx, out)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		rewritten = append(rewritten, h.rewriteAttr(a)...)
	}
	return &TraceHandler{handler: h.handler.WithAttrs(rewritten), verbose: h.verbose}
}

// WithGroup returns a new handler with the given group name.
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{handler: h.handler.WithGroup(name), verbose: h.verbose}
}

// rewriteAttr converts a single attribute, recursively handling groups.
// It may return two attributes for an error with a stack.
func (h *TraceHandler) rewriteAttr(a slog.Attr) []slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, 0, len(attrs))
		for _, groupAttr := range attrs {
			out = append(out, h.rewriteAttr(groupAttr)...)
		}
		return []slog.Attr{{Key: a.Key, Value: slog.GroupValue(out...)}}
	}

	if a.Value.Kind() != slog.KindAny {
		return []slog.Attr{a}
	}
	err, ok := a.Value.Any().(error)
	if !ok || err == nil {
		return []slog.Attr{a}
	}

	msg := slog.String(a.Key, err.Error())
	if !h.verbose {
		return []slog.Attr{msg}
	}
	if stack := stackOf(err); stack != "" {
		return []slog.Attr{msg, slog.String(a.Key+stackSuffix, stack)}
	}
	return []slog.Attr{msg}
}

// NewLogger creates a new slog.Logger writing text records.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug and logs stacks; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewTraceHandler(slog.NewTextHandler(w, handlerOptions(verbose)), verbose))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON format.
// Useful for structured log aggregation of batch report builds.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewTraceHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), verbose))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
