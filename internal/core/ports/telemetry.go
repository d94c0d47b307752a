package ports

import "context"

// SpanConfig carries optional span settings.
type SpanConfig struct {
	Attributes map[string]string
}

// SpanOption configures a span at start time.
type SpanOption func(*SpanConfig)

// WithAttribute attaches a key/value pair to the span at start.
func WithAttribute(key, value string) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]string)
		}
		c.Attributes[key] = value
	}
}

// Span is one traced operation.
type Span interface {
	// End completes the span.
	End()

	// RecordError marks the span as failed with the given error.
	RecordError(err error)

	// SetAttribute attaches a key/value pair to the span.
	SetAttribute(key, value string)
}

// Tracer creates spans around engine operations.
//
//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	// Start begins a span and returns the context carrying it.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)

	// Shutdown flushes any pending span data.
	Shutdown(ctx context.Context) error
}
