package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listServicesTool defines the list_services MCP tool.
var listServicesTool = mcp.NewTool("list_services",
	mcp.WithDescription("List monitored services with id, category, criticality tier, owning team and SLA target."),
	mcp.WithString("filter",
		mcp.Description("Optional case-insensitive fragment matched against service names"),
	),
)

// getPromiseTool defines the get_promise MCP tool.
var getPromiseTool = mcp.NewTool("get_promise",
	mcp.WithDescription("Fetch the per-day promised available minutes for a service over a date range."),
	mcp.WithString("service_id",
		mcp.Required(),
		mcp.Description("Service identifier, e.g. SRV-001"),
	),
	mcp.WithString("date_from",
		mcp.Description("Start date YYYY-MM-DD, inclusive (defaults to January 1 of the current year)"),
	),
	mcp.WithString("date_to",
		mcp.Description("End date YYYY-MM-DD, inclusive (defaults to today)"),
	),
)

// getDowntimeTool defines the get_downtime MCP tool.
var getDowntimeTool = mcp.NewTool("get_downtime",
	mcp.WithDescription("Fetch recorded downtime events for a service intersecting a date range."),
	mcp.WithString("service_id",
		mcp.Required(),
		mcp.Description("Service identifier, e.g. SRV-001"),
	),
	mcp.WithString("date_from",
		mcp.Description("Start date YYYY-MM-DD, inclusive (defaults to January 1 of the current year)"),
	),
	mcp.WithString("date_to",
		mcp.Description("End date YYYY-MM-DD, inclusive (defaults to today)"),
	),
)

// computeAvailabilityTool defines the compute_availability MCP tool.
var computeAvailabilityTool = mcp.NewTool("compute_availability",
	mcp.WithDescription("Compute realized availability for a service over a date range: promised vs merged downtime minutes, percentage and per-day breakdown."),
	mcp.WithString("service_id",
		mcp.Required(),
		mcp.Description("Service identifier, e.g. SRV-001"),
	),
	mcp.WithString("date_from",
		mcp.Description("Start date YYYY-MM-DD, inclusive (defaults to January 1 of the current year)"),
	),
	mcp.WithString("date_to",
		mcp.Description("End date YYYY-MM-DD, inclusive (defaults to today)"),
	),
)
