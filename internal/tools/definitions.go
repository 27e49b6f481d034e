package tools

import (
	"encoding/json"

	"github.com/availops/availagent/internal/llm"
)

// Tool names exposed to the reasoning model.
const (
	ToolListServices        = "list_services"
	ToolGetPromise          = "get_promise"
	ToolGetDowntime         = "get_downtime"
	ToolComputeAvailability = "compute_availability"
)

// rangeParams is the shared parameter schema for the per-service lookups.
// date_from and date_to are optional; when omitted the catalog defaults the
// range to January 1 of the current year through today.
const rangeParams = `{
  "type": "object",
  "properties": {
    "service_id": {
      "type": "string",
      "description": "Service identifier, e.g. SRV-001. Use list_services to discover ids."
    },
    "date_from": {
      "type": "string",
      "description": "Start of the date range, YYYY-MM-DD, inclusive. Defaults to January 1 of the current year."
    },
    "date_to": {
      "type": "string",
      "description": "End of the date range, YYYY-MM-DD, inclusive. Defaults to today."
    }
  },
  "required": ["service_id"]
}`

// Definitions returns the declared tool catalog so the loop can hand it to
// the reasoning model.
func (c *Catalog) Definitions() []llm.ToolDefinition {
	return Definitions()
}

// Definitions returns the declared tool catalog: the four operations with
// their parameter schemas and model-facing descriptions.
func Definitions() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Name:        ToolListServices,
			Description: "List monitored services with their id, category, criticality tier, owning team and SLA target. Optionally filter by a fragment of the service name.",
			Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "filter": {
      "type": "string",
      "description": "Optional case-insensitive fragment matched against service names."
    }
  }
}`),
		},
		{
			Name:        ToolGetPromise,
			Description: "Fetch the per-day promised (committed) available minutes for a service over a date range, including weekday and holiday flags.",
			Parameters:  json.RawMessage(rangeParams),
		},
		{
			Name:        ToolGetDowntime,
			Description: "Fetch recorded downtime events for a service whose interval intersects a date range, with start/end timestamps, duration, reason and category (planned or incident).",
			Parameters:  json.RawMessage(rangeParams),
		},
		{
			Name:        ToolComputeAvailability,
			Description: "Compute realized availability of a service over a date range: promised minutes vs merged downtime minutes, the availability percentage and a per-day breakdown. Use this instead of computing percentages yourself.",
			Parameters:  json.RawMessage(rangeParams),
		},
	}
}
