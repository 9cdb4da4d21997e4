package telemetry

import (
	"context"
	"testing"
)

func TestInitTracing_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	shutdown, err := InitTracing("metabot-test", "0.0.0")
	if err != nil {
		t.Fatalf("InitTracing() error: %v", err)
	}
	defer shutdown()

	if IsTracingEnabled() {
		t.Error("IsTracingEnabled() = true without an endpoint")
	}

	ctx := WithCorrelation(context.Background(), "corr-1")
	spanCtx, span := StartSpan(ctx, "test", "noop")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Error("expected a no-op span while tracing is disabled")
	}
	if got := GetCorrelation(spanCtx); got != "corr-1" {
		t.Errorf("correlation id = %q, want corr-1", got)
	}
}
