// Package metrics accumulates per-operation measurements — durations, counts,
// costs — and flushes them as a single structured log event. One event per
// operation keeps generation telemetry greppable without a metrics backend:
// log aggregators can extract the numeric fields directly.
package metrics

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Measurement units.
const (
	UnitMilliseconds = "ms"
	UnitCount        = "count"
	UnitUSD          = "usd"
	UnitNone         = "none"
)

// metricValue holds a recorded value and its unit.
type metricValue struct {
	value float64
	unit  string
}

// Recorder accumulates dimensions, metrics, and properties for a single
// operation. It is NOT safe for concurrent use from multiple goroutines;
// create one per operation and Flush when the operation completes.
type Recorder struct {
	operation  string
	logger     *zerolog.Logger
	dimensions map[string]string
	metrics    map[string]metricValue
	properties map[string]interface{}
}

// New creates a Recorder for the named operation.
func New(operation string) *Recorder {
	return &Recorder{
		operation:  operation,
		dimensions: make(map[string]string),
		metrics:    make(map[string]metricValue),
		properties: make(map[string]interface{}),
	}
}

// WithLogger directs Flush at a specific logger instead of the global one.
func (r *Recorder) WithLogger(logger zerolog.Logger) *Recorder {
	r.logger = &logger
	return r
}

// Dimension adds a low-cardinality key-value pair that identifies the
// operation variant (e.g. mode, model). Dimensions are emitted as string
// fields alongside the metrics.
func (r *Recorder) Dimension(key, value string) *Recorder {
	r.dimensions[key] = value
	return r
}

// Metric records a named metric value with a unit.
// Use the Unit* constants (UnitMilliseconds, UnitCount, UnitUSD, UnitNone).
func (r *Recorder) Metric(name string, value float64, unit string) *Recorder {
	r.metrics[name] = metricValue{value: value, unit: unit}
	return r
}

// Count is a convenience for recording a count metric (value = 1).
func (r *Recorder) Count(name string) *Recorder {
	return r.Metric(name, 1, UnitCount)
}

// Property adds a high-cardinality field to the event (e.g. a campaign ID).
// Properties are searchable in logs but are not metrics.
func (r *Recorder) Property(key string, value interface{}) *Recorder {
	r.properties[key] = value
	return r
}

// Flush emits the accumulated measurements as one INFO event.
// A Recorder with no metrics emits nothing. After flushing, the Recorder
// should not be reused.
func (r *Recorder) Flush() {
	if len(r.metrics) == 0 {
		return
	}

	logger := &log.Logger
	if r.logger != nil {
		logger = r.logger
	}

	evt := logger.Info().Str("operation", r.operation)

	for k, v := range r.dimensions {
		evt = evt.Str(k, v)
	}

	metricsDict := zerolog.Dict()
	for name, m := range r.metrics {
		metricsDict = metricsDict.Dict(name, zerolog.Dict().
			Float64("value", m.value).
			Str("unit", m.unit))
	}
	evt = evt.Dict("metrics", metricsDict)

	for k, v := range r.properties {
		evt = evt.Interface(k, v)
	}

	evt.Msg("Operation metrics")
}
