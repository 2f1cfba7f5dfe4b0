package structured

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/structured/registry"
)

// Option configures a Parser.
type Option func(*parserConfig)

// parserConfig holds configuration for a Parser instance.
type parserConfig struct {
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	registry *registry.Registry
}

// WithLogger sets a custom logger for the parser. If not provided, a
// default JSON logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *parserConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. When provided, every parse
// runs inside a span with per-stage events; without it, tracing is a
// no-op.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *parserConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter used to count parse attempts
// and repair activations.
func WithMeter(meter metric.Meter) Option {
	return func(c *parserConfig) {
		c.meter = meter
	}
}

// WithRegistry sets the schema registry used to resolve named refs
// during coercion, validation and rendering. Without a registry, ref
// schemas fail coercion and render as bare names.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *parserConfig) {
		c.registry = reg
	}
}
