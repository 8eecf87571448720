// This file implements the fluent builder API for creating and configuring
// Engine instances. The builder is immutable - each method returns a new
// builder with the updated configuration.

package dimgo

// NewBuilder creates an Engine builder that normalizes into mks.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents accidental
// state sharing.
//
// Example:
//
//	eng, err := dimgo.NewBuilder().
//	    CGS().
//	    ParseCache(4096).
//	    Strict().
//	    Build()
func NewBuilder() Builder {
	return Builder{system: "mks"}
}

// MKS creates a builder for the meter-kilogram-second system.
func MKS() Builder {
	return NewBuilder().MKS()
}

// CGS creates a builder for the centimeter-gram-second system.
func CGS() Builder {
	return NewBuilder().CGS()
}

// Builder is an immutable fluent builder for creating Engine instances.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	system    string
	cacheSize *int
	strict    bool
	logger    *Logger
	metrics   MetricsCollector
}

// MKS selects the meter-kilogram-second system.
func (b Builder) MKS() Builder {
	b.system = "mks"
	return b
}

// CGS selects the centimeter-gram-second system.
func (b Builder) CGS() Builder {
	b.system = "cgs"
	return b
}

// System selects a metric system by name.
// Accepted values are "mks" and "cgs".
func (b Builder) System(name string) Builder {
	b.system = name
	return b
}

// ParseCache sets the LRU cache size for parsed units.
// Zero disables caching.
// Default: 1024.
func (b Builder) ParseCache(size int) Builder {
	b.cacheSize = &size
	return b
}

// Strict makes the parser reject expressions with ambiguous operator
// precedence, such as "a / b * c".
func (b Builder) Strict() Builder {
	b.strict = true
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Build creates the Engine.
func (b Builder) Build() (*Engine, error) {
	opts := []Option{WithSystem(b.system)}
	if b.cacheSize != nil {
		opts = append(opts, WithParseCacheSize(*b.cacheSize))
	}
	if b.strict {
		opts = append(opts, WithStrictParsing())
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	return New(opts...)
}
