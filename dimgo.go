package dimgo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/dimgo/measure"
	"github.com/hupe1980/dimgo/metric"
	"github.com/hupe1980/dimgo/physical"
	"github.com/hupe1980/dimgo/symbolic"
)

// Engine bundles a metric system, parser configuration, a parse cache, and
// observability hooks behind one handle. The zero value is not usable; use
// New or NewBuilder.
type Engine struct {
	system  metric.System
	parser  []symbolic.Option
	cache   *lru.Cache[string, metric.Unit] // nil when caching is disabled
	group   singleflight.Group
	metrics MetricsCollector
	logger  *Logger

	parses       atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	conversions  atomic.Int64
	measurements atomic.Int64
	locates      atomic.Int64
	errorCount   atomic.Int64
}

// New creates an Engine.
//
// Options:
//   - WithSystem: metric system to normalize into ("mks" or "cgs").
//   - WithParseCacheSize: LRU cache size for parsed units.
//   - WithStrictParsing: reject ambiguous operator precedence.
//   - WithLogger / WithLogLevel: structured logging.
//   - WithMetricsCollector: operation metrics.
func New(optFns ...Option) (*Engine, error) {
	opts := applyOptions(optFns)

	system, err := metric.SystemNamed(opts.system)
	if err != nil {
		return nil, translateError(err)
	}

	e := &Engine{
		system:  system,
		parser:  opts.parserOptions,
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}
	if opts.parseCacheSize > 0 {
		cache, err := lru.New[string, metric.Unit](opts.parseCacheSize)
		if err != nil {
			return nil, fmt.Errorf("dimgo: create parse cache: %w", err)
		}
		e.cache = cache
	}

	return e, nil
}

// System returns the metric system the engine normalizes into.
func (e *Engine) System() metric.System {
	return e.system
}

// Parse parses a unit expression into its canonical form.
//
// Results are cached in an LRU keyed by the exact input text. Concurrent
// parses of the same text are coalesced into a single parser run.
func (e *Engine) Parse(text string) (metric.Unit, error) {
	start := time.Now()
	unit, cached, err := e.parseUnit(text)
	duration := time.Since(start)
	err = translateError(err)
	e.parses.Add(1)
	if err != nil {
		e.errorCount.Add(1)
	}
	e.metrics.RecordParse(duration, cached, err)
	e.logger.LogParse(context.Background(), text, cached, err)
	return unit, err
}

// parseUnit is the uninstrumented parse path shared by Parse and Convert.
// It reports whether the result came from the cache.
func (e *Engine) parseUnit(text string) (metric.Unit, bool, error) {
	if e.cache == nil {
		unit, err := metric.Parse(text, e.parser...)
		return unit, false, err
	}

	if unit, ok := e.cache.Get(text); ok {
		e.cacheHits.Add(1)
		return unit, true, nil
	}
	e.cacheMisses.Add(1)

	v, err, _ := e.group.Do(text, func() (any, error) {
		unit, err := metric.Parse(text, e.parser...)
		if err != nil {
			return nil, err
		}
		e.cache.Add(text, unit)
		return unit, nil
	})
	if err != nil {
		var zero metric.Unit
		return zero, false, err
	}
	return v.(metric.Unit), false, nil
}

// Convert computes the multiplicative factor that takes values in unit
// from to values in unit to. The units must have identical dimensions.
func (e *Engine) Convert(from, to string) (float64, error) {
	start := time.Now()
	factor, err := e.convert(from, to)
	duration := time.Since(start)
	err = translateError(err)
	e.conversions.Add(1)
	if err != nil {
		e.errorCount.Add(1)
	}
	e.metrics.RecordConvert(duration, err)
	e.logger.LogConvert(context.Background(), from, to, factor, err)
	return factor, err
}

func (e *Engine) convert(from, to string) (float64, error) {
	fromUnit, _, err := e.parseUnit(from)
	if err != nil {
		return 0, err
	}
	toUnit, _, err := e.parseUnit(to)
	if err != nil {
		return 0, err
	}
	return metric.Convert(fromUnit, toUnit)
}

// ScaleOf returns the factor that converts values in the given unit to the
// engine's system.
func (e *Engine) ScaleOf(text string) (float64, error) {
	unit, _, err := e.parseUnit(text)
	if err != nil {
		return 0, translateError(err)
	}
	return unit.Scale(), nil
}

// DimensionsOf returns the dimension vector of the given unit expression.
func (e *Engine) DimensionsOf(text string) (metric.Dimensions, error) {
	unit, _, err := e.parseUnit(text)
	if err != nil {
		var zero metric.Dimensions
		return zero, translateError(err)
	}
	return unit.Dimensions(), nil
}

// Quantity looks up a physical quantity in the engine's system.
func (e *Engine) Quantity(name string) (metric.Quantity, error) {
	q, err := e.system.Quantity(name)
	return q, translateError(err)
}

// UnitOf returns the canonical unit of a physical quantity in the engine's
// system, e.g. UnitOf("energy") is "J" under mks and "erg" under cgs.
func (e *Engine) UnitOf(name string) (metric.Unit, error) {
	u, err := e.system.UnitOf(name)
	return u, translateError(err)
}

// Measure parses measurable input into values with a unit.
//
// A single argument is parsed on its own; multiple arguments are parsed as
// one sequence, so Measure(1.0, 2.0, "m") yields two values in meters.
func (e *Engine) Measure(args ...any) (measure.Measurement, error) {
	start := time.Now()
	var m measure.Measurement
	var err error
	if len(args) == 1 {
		m, err = measure.Parse(args[0])
	} else {
		m, err = measure.Parse(args)
	}
	duration := time.Since(start)
	err = translateError(err)
	e.measurements.Add(1)
	if err != nil {
		e.errorCount.Add(1)
	}
	e.metrics.RecordMeasure(m.Len(), duration, err)
	e.logger.LogMeasure(context.Background(), m.Len(), err)
	return m, err
}

// ScalarOf parses measurable input that must carry exactly one value and
// returns it as a Scalar.
func (e *Engine) ScalarOf(args ...any) (physical.Scalar, error) {
	m, err := e.Measure(args...)
	if err != nil {
		var zero physical.Scalar
		return zero, err
	}
	if m.Len() != 1 {
		var zero physical.Scalar
		return zero, fmt.Errorf("%w: expected a single value, got %d", ErrUnmeasurable, m.Len())
	}
	return physical.NewScalar(m.At(0), m.Unit()), nil
}

// Locate resolves a measurable target against one dimension of an array.
func (e *Engine) Locate(arr physical.Array, dimension string, target any, opts ...physical.IndexOption) (physical.Position, error) {
	start := time.Now()
	pos, err := arr.Locate(dimension, target, opts...)
	duration := time.Since(start)
	err = translateError(err)
	e.locates.Add(1)
	if err != nil {
		e.errorCount.Add(1)
	}
	e.metrics.RecordLocate(duration, err)
	e.logger.LogLocate(context.Background(), dimension, err == nil && pos.IsExact(), err)
	return pos, err
}

// Stats is a point-in-time snapshot of engine activity.
type Stats struct {
	Parses       int64
	CacheHits    int64
	CacheMisses  int64
	Conversions  int64
	Measurements int64
	Locates      int64
	Errors       int64
}

// Stats returns a snapshot of the engine's counters. Cache hits and misses
// count every cached lookup, including the two Convert performs, so they
// need not sum to Parses.
func (e *Engine) Stats() Stats {
	return Stats{
		Parses:       e.parses.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		Conversions:  e.conversions.Load(),
		Measurements: e.measurements.Load(),
		Locates:      e.locates.Load(),
		Errors:       e.errorCount.Load(),
	}
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the shared engine used by the package-level helpers.
// It normalizes into mks with default options.
func Default() *Engine {
	defaultOnce.Do(func() {
		eng, err := New()
		if err != nil {
			panic(err)
		}
		defaultEngine = eng
	})
	return defaultEngine
}

// Parse parses a unit expression using the default engine.
func Parse(text string) (metric.Unit, error) {
	return Default().Parse(text)
}

// Convert computes a conversion factor using the default engine.
func Convert(from, to string) (float64, error) {
	return Default().Convert(from, to)
}

// Measure parses measurable input using the default engine.
func Measure(args ...any) (measure.Measurement, error) {
	return Default().Measure(args...)
}

// ScalarOf parses a single-valued measurement using the default engine.
func ScalarOf(args ...any) (physical.Scalar, error) {
	return Default().ScalarOf(args...)
}

// Unit parses a unit expression and panics on failure. It is intended for
// package-level unit constants:
//
//	var PerCubicCentimeter = dimgo.Unit("cm^-3")
func Unit(text string) metric.Unit {
	u, err := Default().Parse(text)
	if err != nil {
		panic(err)
	}
	return u
}
