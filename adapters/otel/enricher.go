// Package otel adds OpenTelemetry trace context to log events.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/willibrandon/msgtmpl"
	"github.com/willibrandon/msgtmpl/core"
)

// Property names follow the OpenTelemetry log semantic conventions.
const (
	TraceIDProperty    = "trace.id"
	SpanIDProperty     = "span.id"
	TraceFlagsProperty = "trace.flags"
)

// TraceEnricher adds the trace and span ids of the span active in a context.
// The span context is read once, when the enricher is created.
type TraceEnricher struct {
	spanContext trace.SpanContext
}

// NewTraceEnricher creates an enricher for the span active in ctx.
func NewTraceEnricher(ctx context.Context) *TraceEnricher {
	return &TraceEnricher{spanContext: trace.SpanContextFromContext(ctx)}
}

// Enrich adds trace.id, span.id and trace.flags when the span context is
// valid. Existing properties are kept.
func (e *TraceEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	sc := e.spanContext
	if !sc.IsValid() {
		return
	}
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(TraceIDProperty, sc.TraceID().String()))
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(SpanIDProperty, sc.SpanID().String()))
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(TraceFlagsProperty, sc.TraceFlags().String()))
}

// ForSpan returns a logger whose events carry the trace context active in
// ctx, along with the properties and tags pushed onto ctx.
func ForSpan(ctx context.Context, logger *msgtmpl.Logger) *msgtmpl.Logger {
	logger = logger.WithContext(ctx)

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.
		ForContext(TraceIDProperty, sc.TraceID().String()).
		ForContext(SpanIDProperty, sc.SpanID().String()).
		ForContext(TraceFlagsProperty, sc.TraceFlags().String())
}
