package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawhaven/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupExportsHTTPServerSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider, err := Setup(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		ServiceName: "pawhaven-test",
		Environment: "test",
	}, WithExporter(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	handler := otelhttp.NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), "pawhaven-test")

	const parentTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("traceparent", "00-"+parentTraceID+"-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.NoError(t, provider.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, parentTraceID, span.SpanContext.TraceID().String())
	assert.Contains(t, span.Resource.Attributes(), attribute.String("service.name", "pawhaven-test"))
	assert.Contains(t, span.Resource.Attributes(), attribute.String("deployment.environment", "test"))
}

func TestServiceNameFallback(t *testing.T) {
	assert.Equal(t, "pawhaven-api", ServiceName(config.TelemetryConfig{ServiceName: "  "}))
	assert.Equal(t, "shop", ServiceName(config.TelemetryConfig{ServiceName: "shop"}))
}

func TestSamplerAndEndpointNormalization(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{ratio: 0, want: "AlwaysOnSampler"},
		{ratio: 1, want: "AlwaysOnSampler"},
		{ratio: 0.25, want: "TraceIDRatioBased{0.25}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sampler(tt.ratio).Description())
	}
	assert.Equal(t, "collector:4317", stripScheme("http://collector:4317"))
	assert.Equal(t, "collector:4317", stripScheme("collector:4317"))
}

func TestNilProviderIsSafe(t *testing.T) {
	var p *Provider
	assert.NoError(t, p.ForceFlush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}
