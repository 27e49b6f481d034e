package store

import "time"

// Tier is the criticality tier of a service, ordered low to critical.
type Tier string

const (
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// Service is reference data describing a monitored service. Services are
// administered externally; availagent only reads them.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Tier        Tier    `json:"tier"`
	Team        string  `json:"team"`
	SLATarget   float64 `json:"sla_target"`
	KeyChannel  bool    `json:"key_channel"`
}

// PromiseEntry is the committed available minutes for a service on a
// single calendar day. At most one entry exists per (service, day).
type PromiseEntry struct {
	ServiceID       string `json:"service_id"`
	Day             string `json:"day"` // YYYY-MM-DD
	Weekday         string `json:"weekday"`
	Holiday         bool   `json:"holiday"`
	PromisedMinutes int    `json:"promised_minutes"`
}

// DowntimeEvent is a recorded interval during which a service was
// unavailable. Events may overlap each other and may cross day boundaries.
// The stored Minutes field is advisory: the StartedAt/EndedAt span is
// authoritative when the two disagree.
type DowntimeEvent struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	Day       string    `json:"day"` // calendar bucket of StartedAt
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Minutes   int       `json:"minutes"`
	Reason    string    `json:"reason,omitempty"`
	Category  string    `json:"category"` // planned or incident
}
