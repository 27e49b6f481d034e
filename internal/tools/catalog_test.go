package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/availops/availagent/internal/store"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.Seed(context.Background(), store.SampleFixture()); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	c := NewCatalog(st)
	// Pin the clock so date defaulting is deterministic.
	c.now = func() time.Time {
		return time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		t.Fatalf("tool result is not JSON: %v\n%s", err, payload)
	}
	return out
}

func TestDefinitionsCoverCatalog(t *testing.T) {
	defs := Definitions()
	if len(defs) != 4 {
		t.Fatalf("definitions = %d, want 4", len(defs))
	}

	want := map[string]bool{
		ToolListServices:        false,
		ToolGetPromise:          false,
		ToolGetDowntime:         false,
		ToolComputeAvailability: false,
	}
	for _, def := range defs {
		if _, ok := want[def.Name]; !ok {
			t.Errorf("unexpected tool %q", def.Name)
			continue
		}
		want[def.Name] = true
		if def.Description == "" {
			t.Errorf("tool %q has no description", def.Name)
		}
		var schema map[string]any
		if err := json.Unmarshal(def.Parameters, &schema); err != nil {
			t.Errorf("tool %q: parameters are not valid JSON: %v", def.Name, err)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %q missing from definitions", name)
		}
	}
}

func TestExecuteListServices(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolListServices, `{}`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	if out["count"].(float64) != 3 {
		t.Errorf("count = %v, want 3", out["count"])
	}

	result, err = c.Execute(context.Background(), ToolListServices, `{"filter":"portal"}`)
	if err != nil {
		t.Fatalf("Execute(filter) error: %v", err)
	}
	out = decode(t, result)
	if out["count"].(float64) != 1 {
		t.Errorf("filtered count = %v, want 1", out["count"])
	}
}

func TestExecuteGetPromise(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolGetPromise,
		`{"service_id":"SRV-001","date_from":"2024-12-10","date_to":"2024-12-11"}`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	if out["total_promised_minutes"].(float64) != 2880 {
		t.Errorf("total promised = %v, want 2880", out["total_promised_minutes"])
	}
}

func TestExecuteGetDowntime(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolGetDowntime,
		`{"service_id":"SRV-002","date_from":"2024-12-20","date_to":"2024-12-20"}`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	if out["count"].(float64) != 2 {
		t.Errorf("events = %v, want the two overlapping CDN incidents", out["count"])
	}
}

func TestExecuteComputeAvailability(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolComputeAvailability,
		`{"service_id":"SRV-002","date_from":"2024-12-20","date_to":"2024-12-20"}`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	inner := out["result"].(map[string]any)
	// The two incidents 08:10-09:05 and 08:40-09:30 merge to 80 minutes.
	if inner["downtime_minutes"].(float64) != 80 {
		t.Errorf("merged downtime = %v, want 80", inner["downtime_minutes"])
	}
	if out["status"] == nil || out["status"].(string) == "" {
		t.Error("status missing from payload")
	}
}

func TestExecuteDefaultDateRange(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolGetPromise, `{"service_id":"SRV-001"}`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	if out["from"] != "2024-01-01" {
		t.Errorf("default from = %v, want 2024-01-01", out["from"])
	}
	if out["to"] != "2024-12-31" {
		t.Errorf("default to = %v, want 2024-12-31", out["to"])
	}
}

func TestExecuteUnknownServiceIsPayloadNotError(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolComputeAvailability,
		`{"service_id":"SRV-404","date_from":"2024-12-01","date_to":"2024-12-02"}`)
	if err != nil {
		t.Fatalf("Execute() error: %v (domain failures must come back as payloads)", err)
	}

	out := decode(t, result)
	if out["error"] != "not_found" {
		t.Errorf("error code = %v, want not_found", out["error"])
	}
}

func TestExecuteInvalidRangeIsPayload(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolGetDowntime,
		`{"service_id":"SRV-001","date_from":"2024-12-10","date_to":"2024-12-01"}`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	if out["error"] != "invalid_range" {
		t.Errorf("error code = %v, want invalid_range", out["error"])
	}
}

func TestExecuteBadArgumentsIsPayload(t *testing.T) {
	c := testCatalog(t)

	result, err := c.Execute(context.Background(), ToolListServices, `{not json`)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	out := decode(t, result)
	if out["error"] != "bad_arguments" {
		t.Errorf("error code = %v, want bad_arguments", out["error"])
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	c := testCatalog(t)

	_, err := c.Execute(context.Background(), "drop_tables", `{}`)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("error = %v, want ErrUnknownTool", err)
	}
}
