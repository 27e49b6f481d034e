package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/availops/availagent/internal/store"
	"github.com/availops/availagent/internal/tools"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.Seed(context.Background(), store.SampleFixture()); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	return NewServer(tools.NewCatalog(st))
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestHandleListServices(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("all services", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleListServices(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		for _, id := range []string{"SRV-001", "SRV-002", "SRV-003"} {
			if !strings.Contains(text, id) {
				t.Errorf("result missing %s:\n%s", id, text)
			}
		}
	})

	t.Run("filtered", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"filter": "payments"}

		result, err := srv.handleListServices(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := extractText(result)
		if !strings.Contains(text, "SRV-001") {
			t.Errorf("expected SRV-001 in result:\n%s", text)
		}
		if strings.Contains(text, "SRV-002") {
			t.Errorf("filter should exclude SRV-002:\n%s", text)
		}
	})
}

func TestHandleComputeAvailability(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("known service", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"service_id": "SRV-001",
			"date_from":  "2024-12-10",
			"date_to":    "2024-12-10",
		}

		result, err := srv.handleComputeAvailability(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.Contains(text, `"downtime_minutes":30`) {
			t.Errorf("expected 30 downtime minutes:\n%s", text)
		}
	})

	t.Run("missing service_id", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"date_from": "2024-12-01"}

		result, err := srv.handleComputeAvailability(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing service_id")
		}
	})

	t.Run("unknown service is a payload error", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"service_id": "SRV-404",
			"date_from":  "2024-12-01",
			"date_to":    "2024-12-31",
		}

		result, err := srv.handleComputeAvailability(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatal("domain failures should come back as text payloads")
		}
		if text := extractText(result); !strings.Contains(text, "not_found") {
			t.Errorf("expected not_found payload:\n%s", text)
		}
	})
}

func TestHandleGetDowntime(t *testing.T) {
	srv := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"service_id": "SRV-002",
		"date_from":  "2024-12-20",
		"date_to":    "2024-12-20",
	}

	result, err := srv.handleGetDowntime(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := extractText(result)
	if !strings.Contains(text, `"count":2`) {
		t.Errorf("expected two events:\n%s", text)
	}
}
