package observability

import (
	"context"
	"reflect"
	"testing"
)

func TestOtelSampleRatio(t *testing.T) {
	cases := map[string]float64{"": 0.1, "0.5": 0.5, "-1": 0, "7": 1, "abc": 0.1}
	for raw, want := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", raw)
		if got := otelSampleRatio(); got != want {
			t.Fatalf("otelSampleRatio(%q): got %v want %v", raw, got, want)
		}
	}
}

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc, broken ,=v,k=")
	if got := otelHeaders(); !reflect.DeepEqual(got, map[string]string{"x-api-key": "abc"}) {
		t.Fatalf("otelHeaders: got %v", got)
	}
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	if got := otelHeaders(); got != nil {
		t.Fatalf("otelHeaders(empty): got %v", got)
	}
}

func TestStartSpanWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	if ctx == nil {
		t.Fatalf("expected a context")
	}
}
