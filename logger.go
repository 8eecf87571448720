package dimgo

import (
	"context"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Logger emits structured records for engine operations. It embeds
// slog.Logger, so the full slog API is available next to the helpers
// below. All helpers log successes at debug level and failures at
// error level.
type Logger struct {
	*slog.Logger
}

func wrap(h slog.Handler) *Logger {
	return &Logger{Logger: slog.New(h)}
}

// NewLogger builds a Logger on top of an existing slog handler, so the
// engine can share the host application's logging pipeline. A nil
// handler falls back to text output on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return wrap(handler)
}

// NewTextLogger writes logfmt-style records to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return wrap(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger writes one JSON object per record to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return wrap(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewDevLogger writes colorized records with compact timestamps,
// meant for interactive terminals rather than log aggregation.
func NewDevLogger(level slog.Level) *Logger {
	return wrap(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}

// NoopLogger swallows every record. It is the default when no logger
// is configured.
func NoopLogger() *Logger {
	return wrap(slog.DiscardHandler)
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithSystem tags every record with the active metric system.
func (l *Logger) WithSystem(name string) *Logger {
	return l.with("system", name)
}

// WithUnit tags every record with a unit expression.
func (l *Logger) WithUnit(text string) *Logger {
	return l.with("unit", text)
}

// WithSnapshot tags every record with a snapshot name.
func (l *Logger) WithSnapshot(name string) *Logger {
	return l.with("snapshot", name)
}

// event writes op+" completed" at debug level, or op+" failed" at
// error level with the error attached.
func (l *Logger) event(ctx context.Context, op string, err error, attrs ...any) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed", append(attrs, "error", err)...)
		return
	}
	l.DebugContext(ctx, op+" completed", attrs...)
}

// LogParse records a unit parse and whether the cache served it.
func (l *Logger) LogParse(ctx context.Context, text string, cached bool, err error) {
	attrs := []any{"text", text}
	if err == nil {
		attrs = append(attrs, "cached", cached)
	}
	l.event(ctx, "parse", err, attrs...)
}

// LogConvert records a conversion between two unit expressions.
func (l *Logger) LogConvert(ctx context.Context, from, to string, factor float64, err error) {
	attrs := []any{"from", from, "to", to}
	if err == nil {
		attrs = append(attrs, "factor", factor)
	}
	l.event(ctx, "conversion", err, attrs...)
}

// LogMeasure records a measurement parse.
func (l *Logger) LogMeasure(ctx context.Context, values int, err error) {
	var attrs []any
	if err == nil {
		attrs = []any{"values", values}
	}
	l.event(ctx, "measurement", err, attrs...)
}

// LogLocate records a measurable index lookup.
func (l *Logger) LogLocate(ctx context.Context, dimension string, exact bool, err error) {
	attrs := []any{"dimension", dimension}
	if err == nil {
		attrs = append(attrs, "exact", exact)
	}
	l.event(ctx, "locate", err, attrs...)
}
