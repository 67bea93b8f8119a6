package tracing

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
)

func TestInitOtelWithoutExporter(t *testing.T) {
	os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	tp, shutdown := InitOtel(context.Background(), "echo-test")
	defer shutdown()

	assert.NotNil(t, tp)
	assert.Equal(t, tp, otel.GetTracerProvider())

	_, span := otel.Tracer("").Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}
