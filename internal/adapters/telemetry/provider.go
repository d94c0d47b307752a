// Package telemetry implements ports.Tracer on OpenTelemetry.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/parknav/parknav/internal/core/ports"
)

// InstrumentationName identifies parknav spans to the installed provider.
const InstrumentationName = "github.com/parknav/parknav"

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// Spans go to the globally installed tracer provider; without one they are
// no-ops, so the routing path pays nothing when tracing is off.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer creates a tracer with the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{tracer: otel.Tracer(name)}
}

// Start begins a span and returns the context carrying it.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes))
	for key, value := range cfg.Attributes {
		attrs = append(attrs, attribute.String(key, value))
	}

	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &OTelSpan{span: span}
}

// Shutdown flushes pending spans when the installed provider supports it.
// The provider itself is owned by whoever installed it, so this flushes
// rather than shutting it down.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	type flusher interface {
		ForceFlush(context.Context) error
	}
	if provider, ok := otel.GetTracerProvider().(flusher); ok {
		return provider.ForceFlush(ctx)
	}
	return nil
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}
