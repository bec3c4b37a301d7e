package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
)

func TestInit_Disabled(t *testing.T) {
	tp, err := Init(context.Background(), config.TracingConfig{Enabled: false}, config.AppConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}
