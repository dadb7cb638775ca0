package metrics

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecorder_FlushOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	New("campaign_generation").
		WithLogger(logger).
		Dimension("mode", "full").
		Metric("duration", 1234.5, UnitMilliseconds).
		Metric("platforms", 3, UnitCount).
		Property("campaign_id", "abc-123").
		Flush()

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to parse metrics output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if doc["operation"] != "campaign_generation" {
		t.Errorf("expected operation=campaign_generation, got %v", doc["operation"])
	}
	if doc["mode"] != "full" {
		t.Errorf("expected mode=full, got %v", doc["mode"])
	}
	if doc["campaign_id"] != "abc-123" {
		t.Errorf("expected campaign_id=abc-123, got %v", doc["campaign_id"])
	}

	metricsField, ok := doc["metrics"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing metrics field in output: %s", buf.String())
	}
	duration, ok := metricsField["duration"].(map[string]interface{})
	if !ok {
		t.Fatal("missing duration metric")
	}
	if duration["value"] != 1234.5 {
		t.Errorf("expected duration=1234.5, got %v", duration["value"])
	}
	if duration["unit"] != UnitMilliseconds {
		t.Errorf("expected unit %q, got %v", UnitMilliseconds, duration["unit"])
	}
}

func TestRecorder_FlushEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	New("noop").WithLogger(logger).Flush()

	if buf.Len() != 0 {
		t.Errorf("expected no output for empty recorder, got: %s", buf.String())
	}
}

func TestRecorder_Count(t *testing.T) {
	rec := New("test")
	rec.Count("errors")

	m, ok := rec.metrics["errors"]
	if !ok || m.value != 1 {
		t.Errorf("expected errors=1, got %v", m.value)
	}
	if m.unit != UnitCount {
		t.Errorf("expected unit count, got %v", m.unit)
	}
}

func TestRecorder_Chaining(t *testing.T) {
	rec := New("test").
		Dimension("mode", "content_only").
		Metric("duration", 100, UnitMilliseconds).
		Count("calls").
		Property("id", "xyz")

	if rec.dimensions["mode"] != "content_only" {
		t.Error("chaining Dimension failed")
	}
	if rec.metrics["duration"].value != 100 {
		t.Error("chaining Metric failed")
	}
	if rec.metrics["calls"].value != 1 {
		t.Error("chaining Count failed")
	}
	if rec.properties["id"] != "xyz" {
		t.Error("chaining Property failed")
	}
}
