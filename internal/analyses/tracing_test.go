package analyses

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	recorderOnce sync.Once
	recorder     *tracetest.SpanRecorder
)

// spanRecorder installs one recording provider for the package; the global
// tracer only delegates to the first provider set.
func spanRecorder() *tracetest.SpanRecorder {
	recorderOnce.Do(func() {
		recorder = tracetest.NewSpanRecorder()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	})
	return recorder
}

func endedSpan(t *testing.T, sr *tracetest.SpanRecorder, name, analysisID string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() != name {
			continue
		}
		for _, kv := range span.Attributes() {
			if kv.Key == "analysis_id" && kv.Value.AsString() == analysisID {
				return span
			}
		}
	}
	t.Fatalf("no ended %s span for %q", name, analysisID)
	return nil
}

func TestExecuteRecordsSpan(t *testing.T) {
	sr := spanRecorder()
	svc := newTestService(t, 8)

	analysis, err := svc.Execute(context.Background(), ToolComplexity, "guest:g1", "return a + b;")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	span := endedSpan(t, sr, "analyses.execute", analysis.ID)
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["tool"].AsString() != string(ToolComplexity) {
		t.Fatalf("tool attribute = %q", attrs["tool"].AsString())
	}
	if attrs["cached"].AsBool() {
		t.Fatalf("first run must not be cached")
	}
	if span.Status().Code == codes.Error {
		t.Fatalf("unexpected error status")
	}
}

func TestExecuteSpanRecordsErrors(t *testing.T) {
	sr := spanRecorder()
	svc := newTestService(t, 8)
	before := len(sr.Ended())

	if _, err := svc.Execute(context.Background(), Tool("poetry"), "guest:g1", "x"); !errors.Is(err, ErrUnsupportedTool) {
		t.Fatalf("expected ErrUnsupportedTool, got %v", err)
	}

	ended := sr.Ended()[before:]
	for _, span := range ended {
		if span.Name() == "analyses.execute" && span.Status().Code == codes.Error && len(span.Events()) > 0 {
			return
		}
	}
	t.Fatalf("expected an errored execute span, got %d spans", len(ended))
}
