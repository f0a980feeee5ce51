package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipOTelLog(t *testing.T) {
	if !shouldSkipOTelLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipOTelLog("http request", map[string]any{"path": "/v1/tournaments"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipOTelLog("qstash publish request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes("usecase", map[string]any{
		"tournament_id": "t-1",
		"club_id":       int64(42),
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "logger" || attrs[0].Value.AsString() != "usecase" {
		t.Fatalf("unexpected logger attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "club_id" || attrs[1].Value.AsInt64() != 42 {
		t.Fatalf("unexpected club_id attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "tournament_id" || attrs[2].Value.AsString() != "t-1" {
		t.Fatalf("unexpected tournament_id attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"elo":  1512.5,
		"won":  true,
		"club": []any{int64(2), int64(3)},
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 3 {
		t.Fatalf("expected 3 map items, got %d", len(items))
	}
}
