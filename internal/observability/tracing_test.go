package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewTracer_Disabled(t *testing.T) {
	t.Parallel()

	tracer, err := NewTracer(TracerConfig{
		ServiceName: "signpost-test",
		Enabled:     false,
	})
	require.NoError(t, err)
	require.NotNil(t, tracer)

	ctx, span := tracer.StartSpan(context.Background(), "test-span",
		attribute.String("route", "user"),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, span)
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestTracer_ShutdownWithoutProvider(t *testing.T) {
	t.Parallel()

	tracer := &Tracer{}
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
