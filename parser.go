package structured

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/structured/coerce"
	"github.com/zero-day-ai/structured/jsonish"
	"github.com/zero-day-ai/structured/registry"
	"github.com/zero-day-ai/structured/schema"
	"github.com/zero-day-ai/structured/value"
)

// Parser composes the output-parsing pipeline: lenient extraction,
// JSON parsing, schema coercion, validation and destination decoding.
// A Parser is immutable after construction and safe for concurrent use;
// the registry it holds serializes its own mutations.
type Parser struct {
	id       string
	logger   *slog.Logger
	tracer   trace.Tracer
	registry *registry.Registry

	parseCounter  metric.Int64Counter
	repairCounter metric.Int64Counter
}

// New creates a Parser with the provided options.
//
// Example:
//
//	p := structured.New(
//	    structured.WithLogger(logger),
//	    structured.WithRegistry(reg),
//	)
func New(opts ...Option) *Parser {
	cfg := &parserConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	if cfg.tracer == nil {
		cfg.tracer = noop.NewTracerProvider().Tracer("structured")
	}

	p := &Parser{
		id:       uuid.NewString(),
		logger:   cfg.logger,
		tracer:   cfg.tracer,
		registry: cfg.registry,
	}

	if cfg.meter != nil {
		var err error
		p.parseCounter, err = cfg.meter.Int64Counter("structured.parse.attempts",
			metric.WithDescription("Number of parse attempts"))
		if err != nil {
			cfg.logger.Warn("failed to create parse counter", "error", err)
		}
		p.repairCounter, err = cfg.meter.Int64Counter("structured.repair.activations",
			metric.WithDescription("Number of repair-and-retry activations"))
		if err != nil {
			cfg.logger.Warn("failed to create repair counter", "error", err)
		}
	}

	return p
}

// ID returns the parser's unique instance identifier.
func (p *Parser) ID() string { return p.id }

// Registry returns the registry the parser resolves refs against, or
// nil when none was configured.
func (p *Parser) Registry() *registry.Registry { return p.registry }

// ParseValue runs extraction, JSON parsing and, when target is non-nil,
// coercion and validation against it. The returned Value satisfies the
// target schema.
func (p *Parser) ParseValue(ctx context.Context, text string, target *schema.Type) (value.Value, error) {
	const op = "Parser.ParseValue"

	ctx, span := p.startSpan(ctx, op)
	defer span.End()
	p.count(ctx, p.parseCounter)

	jsonText, err := jsonish.Extract(text)
	if err != nil {
		p.logger.Debug("extraction failed", "parser", p.id, "input_length", len(text))
		return value.Value{}, NewExtractionError(op, err).WithContext(map[string]any{
			"parser":       p.id,
			"input_length": len(text),
		})
	}
	span.AddEvent("extracted", trace.WithAttributes(attribute.Int("json_length", len(jsonText))))

	v, err := value.Parse(jsonText)
	if err != nil {
		// Extract validated the text, so this is unreachable in
		// practice; classify it with extraction all the same.
		return value.Value{}, NewExtractionError(op, err)
	}

	if target == nil {
		return v, nil
	}

	coerced, err := coerce.CoerceWithRegistry(v, *target, p.registry)
	if err != nil {
		return value.Value{}, NewCoercionError(op, err).WithContext(map[string]any{"parser": p.id})
	}
	span.AddEvent("coerced")

	if err := coerce.Validate(coerced, *target, p.registry); err != nil {
		return value.Value{}, NewValidationError(op, err).WithContext(map[string]any{"parser": p.id})
	}
	span.AddEvent("validated")

	return coerced, nil
}

// Parse runs the full pipeline and decodes the validated value into
// dest, which must be a non-nil pointer. Snake_case keys are mapped
// onto the destination's field names first; when that does not fit, the
// exact key names are used, so both conventions work transparently.
func (p *Parser) Parse(ctx context.Context, text string, target *schema.Type, dest any) error {
	const op = "Parser.Parse"

	ctx, span := p.startSpan(ctx, op)
	defer span.End()

	v, err := p.ParseValue(ctx, text, target)
	if err != nil {
		return err
	}

	if err := decodeValue(v, dest); err != nil {
		return NewDecodeError(op, err).WithContext(map[string]any{"parser": p.id})
	}
	return nil
}

// ParseWithRepair runs Parse and, when the full pipeline fails, retries
// exactly once with the repair pipeline applied to the input text. The
// original error is surfaced when the retry also fails.
func (p *Parser) ParseWithRepair(ctx context.Context, text string, target *schema.Type, dest any) error {
	origErr := p.Parse(ctx, text, target, dest)
	if origErr == nil {
		return nil
	}

	repaired, ok := jsonish.Repair(text)
	if !ok {
		return origErr
	}

	p.count(ctx, p.repairCounter)
	p.logger.Debug("retrying after repair", "parser", p.id)

	if err := p.Parse(ctx, repaired, target, dest); err != nil {
		return origErr
	}
	return nil
}

// Parse is the generic convenience form of Parser.Parse for callers who
// want a typed result instead of supplying a destination pointer.
func Parse[T any](ctx context.Context, p *Parser, text string, target *schema.Type) (T, error) {
	var out T
	err := p.Parse(ctx, text, target, &out)
	return out, err
}

// startSpan begins a span carrying the parser's instance ID. The tracer
// defaults to a no-op, so spans cost nothing unless one was configured.
func (p *Parser) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("parser.id", p.id),
	))
}

func (p *Parser) count(ctx context.Context, c metric.Int64Counter) {
	if c != nil {
		c.Add(ctx, 1)
	}
}
