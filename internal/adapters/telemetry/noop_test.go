package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parknav/parknav/internal/adapters/telemetry"
)

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(t.Context(), "route.compute")
	assert.NotNil(t, ctx)
	require.NotNil(t, span)

	span.End()
}

func TestNoOpSpan_Methods(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()

	_, span := tracer.Start(t.Context(), "route.compute")
	span.SetAttribute("building", "B1")
	span.RecordError(errors.New("boom"))
	span.End()
}

func TestNoOpTracer_Shutdown(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	require.NoError(t, tracer.Shutdown(t.Context()))
}
