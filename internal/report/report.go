// Package report renders availability results as human-readable markdown
// and, optionally, standalone HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/availops/availagent/internal/sla"
	"github.com/availops/availagent/internal/store"
)

// Markdown renders an availability report for one service and range.
// The output is deterministic for identical inputs.
func Markdown(svc *store.Service, result *sla.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Availability Report: %s\n\n", svc.Name)
	fmt.Fprintf(&b, "- **Service**: %s (%s)\n", svc.ID, svc.Category)
	fmt.Fprintf(&b, "- **Tier**: %s, owned by %s\n", svc.Tier, svc.Team)
	fmt.Fprintf(&b, "- **SLA target**: %.2f%%\n", svc.SLATarget)
	fmt.Fprintf(&b, "- **Period**: %s to %s\n\n", result.From, result.To)

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Promised minutes | %.0f |\n", result.PromisedMinutes)
	fmt.Fprintf(&b, "| Downtime minutes (merged) | %.0f |\n", result.DowntimeMinutes)
	if result.AvailabilityPct != nil {
		fmt.Fprintf(&b, "| Availability | %.4f%% |\n", *result.AvailabilityPct)
		fmt.Fprintf(&b, "| Status | %s |\n", sla.StatusFor(result.AvailabilityPct))
		if *result.AvailabilityPct >= svc.SLATarget {
			fmt.Fprintf(&b, "| SLA target %.2f%% | met |\n", svc.SLATarget)
		} else {
			fmt.Fprintf(&b, "| SLA target %.2f%% | missed |\n", svc.SLATarget)
		}
	} else {
		fmt.Fprintf(&b, "| Availability | undefined (%s) |\n", result.Condition)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Daily breakdown\n\n")
	fmt.Fprintf(&b, "| Day | Promised | Downtime | Availability |\n|---|---|---|---|\n")
	for _, day := range result.Days {
		label := day.Day
		if day.Holiday {
			label += " (holiday)"
		}
		pct := "—"
		if day.AvailabilityPct != nil {
			pct = fmt.Sprintf("%.4f%%", *day.AvailabilityPct)
		}
		fmt.Fprintf(&b, "| %s | %.0f | %.0f | %s |\n",
			label, day.PromisedMinutes, day.DowntimeMinutes, pct)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\n## Data-quality warnings\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}

	return b.String()
}
