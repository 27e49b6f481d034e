package report

import (
	"strings"
	"testing"

	"github.com/availops/availagent/internal/sla"
	"github.com/availops/availagent/internal/store"
)

func sampleResult() (*store.Service, *sla.Result) {
	pct := 97.9167
	dayPct := 97.9167
	svc := &store.Service{
		ID: "SRV-001", Name: "Payments API", Category: "api",
		Tier: store.TierCritical, Team: "payments", SLATarget: 99.9,
	}
	result := &sla.Result{
		ServiceID:       "SRV-001",
		From:            "2024-12-10",
		To:              "2024-12-10",
		PromisedMinutes: 1440,
		DowntimeMinutes: 30,
		AvailabilityPct: &pct,
		Days: []sla.DayBreakdown{
			{Day: "2024-12-10", PromisedMinutes: 1440, DowntimeMinutes: 30, AvailabilityPct: &dayPct},
		},
		Warnings: []string{"event e1: stored duration 99 min disagrees with timestamp span 30 min; using the span"},
	}
	return svc, result
}

func TestMarkdown(t *testing.T) {
	svc, result := sampleResult()
	md := Markdown(svc, result)

	for _, want := range []string{
		"# Availability Report: Payments API",
		"97.9167%",
		"| Promised minutes | 1440 |",
		"| Downtime minutes (merged) | 30 |",
		"missed", // 97.9 < the 99.9 target
		"2024-12-10",
		"Data-quality warnings",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownUndefinedAvailability(t *testing.T) {
	svc, result := sampleResult()
	result.AvailabilityPct = nil
	result.Condition = sla.NoPromiseCondition
	result.PromisedMinutes = 0

	md := Markdown(svc, result)
	if !strings.Contains(md, "undefined") || !strings.Contains(md, sla.NoPromiseCondition) {
		t.Errorf("markdown should state the undefined condition:\n%s", md)
	}
}

func TestMarkdownDeterministic(t *testing.T) {
	svc, result := sampleResult()
	if Markdown(svc, result) != Markdown(svc, result) {
		t.Error("identical inputs produced different markdown")
	}
}

func TestHTML(t *testing.T) {
	svc, result := sampleResult()
	page, err := HTML(Markdown(svc, result), "Availability Report: Payments API")
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Availability Report: Payments API</title>",
		"<table>", // GFM tables must render as real tables
		"97.9167%",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}
