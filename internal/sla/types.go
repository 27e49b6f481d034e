package sla

import "time"

// Promise is the committed available minutes for one calendar day.
type Promise struct {
	Day     string `json:"day"` // YYYY-MM-DD
	Minutes int    `json:"minutes"`
	Holiday bool   `json:"holiday,omitempty"`
}

// Event is a downtime interval as the engine sees it. ReportedMinutes is the
// advisory duration carried by the record; the Start/End span is authoritative.
type Event struct {
	ID              string
	Start           time.Time
	End             time.Time
	ReportedMinutes int
}

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the interval's duration in minutes.
func (iv Interval) Minutes() float64 {
	return iv.End.Sub(iv.Start).Minutes()
}

// DayBreakdown explains one day's contribution to a Result.
type DayBreakdown struct {
	Day             string   `json:"day"`
	Holiday         bool     `json:"holiday,omitempty"`
	PromisedMinutes float64  `json:"promised_minutes"`
	DowntimeMinutes float64  `json:"downtime_minutes"`
	AvailabilityPct *float64 `json:"availability_pct"` // nil when nothing was promised
}

// Result is the outcome of an availability computation. AvailabilityPct is
// nil, with Condition set, when no minutes were promised in the range.
type Result struct {
	ServiceID       string         `json:"service_id"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	PromisedMinutes float64        `json:"promised_minutes"`
	DowntimeMinutes float64        `json:"downtime_minutes"`
	AvailabilityPct *float64       `json:"availability_pct"`
	Condition       string         `json:"condition,omitempty"`
	Days            []DayBreakdown `json:"days"`
	Warnings        []string       `json:"warnings,omitempty"`
}

// NoPromiseCondition is the Condition value reported when the range holds no
// promised minutes, so the percentage is undefined rather than 100 or 0.
const NoPromiseCondition = "no promise defined for range"
