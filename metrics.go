package dimgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    parseCounter     prometheus.Counter
//	    convertHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordParse(duration time.Duration, cached bool, err error) {
//	    p.parseCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordParse is called after each unit parse.
	// cached reports whether the parse was served from the cache,
	// err is nil if successful.
	RecordParse(duration time.Duration, cached bool, err error)

	// RecordConvert is called after each conversion.
	RecordConvert(duration time.Duration, err error)

	// RecordMeasure is called after each measurement parse.
	// values is the number of parsed values.
	RecordMeasure(values int, duration time.Duration, err error)

	// RecordLocate is called after each measurable index resolution.
	RecordLocate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordParse(time.Duration, bool, error)  {}
func (NoopMetricsCollector) RecordConvert(time.Duration, error)      {}
func (NoopMetricsCollector) RecordMeasure(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLocate(time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ParseCount        atomic.Int64
	ParseCached       atomic.Int64
	ParseErrors       atomic.Int64
	ParseTotalNanos   atomic.Int64
	ConvertCount      atomic.Int64
	ConvertErrors     atomic.Int64
	ConvertTotalNanos atomic.Int64
	MeasureCount      atomic.Int64
	MeasureValues     atomic.Int64
	MeasureErrors     atomic.Int64
	LocateCount       atomic.Int64
	LocateErrors      atomic.Int64
}

// RecordParse implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParse(duration time.Duration, cached bool, err error) {
	b.ParseCount.Add(1)
	b.ParseTotalNanos.Add(duration.Nanoseconds())
	if cached {
		b.ParseCached.Add(1)
	}
	if err != nil {
		b.ParseErrors.Add(1)
	}
}

// RecordConvert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConvert(duration time.Duration, err error) {
	b.ConvertCount.Add(1)
	b.ConvertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ConvertErrors.Add(1)
	}
}

// RecordMeasure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMeasure(values int, duration time.Duration, err error) {
	b.MeasureCount.Add(1)
	b.MeasureValues.Add(int64(values))
	if err != nil {
		b.MeasureErrors.Add(1)
	}
}

// RecordLocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLocate(duration time.Duration, err error) {
	b.LocateCount.Add(1)
	if err != nil {
		b.LocateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ParseCount:      b.ParseCount.Load(),
		ParseCached:     b.ParseCached.Load(),
		ParseErrors:     b.ParseErrors.Load(),
		ParseAvgNanos:   b.getAvgParseNanos(),
		ConvertCount:    b.ConvertCount.Load(),
		ConvertErrors:   b.ConvertErrors.Load(),
		ConvertAvgNanos: b.getAvgConvertNanos(),
		MeasureCount:    b.MeasureCount.Load(),
		MeasureValues:   b.MeasureValues.Load(),
		MeasureErrors:   b.MeasureErrors.Load(),
		LocateCount:     b.LocateCount.Load(),
		LocateErrors:    b.LocateErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgParseNanos() int64 {
	count := b.ParseCount.Load()
	if count == 0 {
		return 0
	}
	return b.ParseTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgConvertNanos() int64 {
	count := b.ConvertCount.Load()
	if count == 0 {
		return 0
	}
	return b.ConvertTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ParseCount      int64
	ParseCached     int64
	ParseErrors     int64
	ParseAvgNanos   int64
	ConvertCount    int64
	ConvertErrors   int64
	ConvertAvgNanos int64
	MeasureCount    int64
	MeasureValues   int64
	MeasureErrors   int64
	LocateCount     int64
	LocateErrors    int64
}
