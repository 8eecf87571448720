package dimgo

import (
	"log/slog"

	"github.com/hupe1980/dimgo/symbolic"
)

const defaultParseCacheSize = 1024

type options struct {
	system           string
	parseCacheSize   int
	parserOptions    []symbolic.Option
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		system:           "mks",
		parseCacheSize:   defaultParseCacheSize,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// An Option adjusts how New assembles an Engine. Without options the
// engine normalizes into mks, memoizes up to 1024 parsed units, and
// stays silent: no logging, no metrics.
type Option func(*options)

// WithSystem selects the metric system parsed units normalize into,
// either "mks" (the default) or "cgs". New fails for any other name.
func WithSystem(name string) Option {
	return func(o *options) {
		o.system = name
	}
}

// WithParseCacheSize sets how many parsed units the engine memoizes.
// Parse results are immutable, so entries never go stale; the cache
// only evicts. A size of zero or less disables memoization and every
// Parse call runs the full parser.
func WithParseCacheSize(size int) Option {
	return func(o *options) {
		o.parseCacheSize = size
	}
}

// WithStrictParsing rejects unit expressions whose grouping is
// ambiguous without parentheses, such as "kg / m * s". See
// symbolic.WithStrict for the exact rules.
func WithStrictParsing() Option {
	return func(o *options) {
		o.parserOptions = append(o.parserOptions, symbolic.WithStrict())
	}
}

// WithLogger routes operation records through logger. Nil restores the
// default silent logger.
//
//	eng, _ := dimgo.New(dimgo.WithLogger(dimgo.NewJSONLogger(slog.LevelInfo)))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel is shorthand for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector records operation counts and latencies through
// mc, typically a *BasicMetricsCollector. Nil restores the default
// no-op collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
