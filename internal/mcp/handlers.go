package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/availops/availagent/internal/tools"
)

// handleListServices returns the service inventory, optionally filtered.
func (s *Server) handleListServices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := map[string]string{}
	if filter := request.GetString("filter", ""); filter != "" {
		args["filter"] = filter
	}
	return s.dispatch(ctx, tools.ToolListServices, args)
}

// handleGetPromise returns promise entries for a service and range.
func (s *Server) handleGetPromise(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.rangeCall(ctx, tools.ToolGetPromise, request)
}

// handleGetDowntime returns downtime events for a service and range.
func (s *Server) handleGetDowntime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.rangeCall(ctx, tools.ToolGetDowntime, request)
}

// handleComputeAvailability runs the availability engine for a service and range.
func (s *Server) handleComputeAvailability(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.rangeCall(ctx, tools.ToolComputeAvailability, request)
}

func (s *Server) rangeCall(ctx context.Context, tool string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	serviceID, err := request.RequireString("service_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: service_id"), nil
	}

	args := map[string]string{"service_id": serviceID}
	if from := request.GetString("date_from", ""); from != "" {
		args["date_from"] = from
	}
	if to := request.GetString("date_to", ""); to != "" {
		args["date_to"] = to
	}
	return s.dispatch(ctx, tool, args)
}

// dispatch routes the call through the shared catalog so MCP clients see the
// exact same behavior and payloads as the built-in agent loop.
func (s *Server) dispatch(ctx context.Context, tool string, args map[string]string) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding arguments: %v", err)), nil
	}

	result, err := s.catalog.Execute(ctx, tool, string(encoded))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
	}
	return mcp.NewToolResultText(result), nil
}
