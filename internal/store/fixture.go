package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML format accepted by `availagent seed`.
type Fixture struct {
	Services  []Service         `yaml:"services"`
	Promises  []FixturePromise  `yaml:"promises"`
	Downtimes []FixtureDowntime `yaml:"downtimes"`
}

// FixturePromise describes one promise row, or a run of identical days when
// Until is set.
type FixturePromise struct {
	ServiceID       string `yaml:"service_id"`
	Day             string `yaml:"day"`
	Until           string `yaml:"until,omitempty"`
	Holiday         bool   `yaml:"holiday,omitempty"`
	PromisedMinutes int    `yaml:"promised_minutes"`
}

// FixtureDowntime describes one downtime event with RFC 3339 timestamps.
type FixtureDowntime struct {
	ServiceID string `yaml:"service_id"`
	StartedAt string `yaml:"started_at"`
	EndedAt   string `yaml:"ended_at"`
	Minutes   int    `yaml:"minutes,omitempty"`
	Reason    string `yaml:"reason,omitempty"`
	Category  string `yaml:"category,omitempty"`
}

// LoadFixture reads and parses a fixture YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return &f, nil
}

// Seed loads a fixture into the store. Services and promises are upserted,
// downtime events are appended with generated ids.
func (s *Store) Seed(ctx context.Context, f *Fixture) error {
	for _, svc := range f.Services {
		if svc.Category == "" {
			svc.Category = "web"
		}
		if svc.Tier == "" {
			svc.Tier = TierMedium
		}
		if err := s.UpsertService(ctx, svc); err != nil {
			return err
		}
	}

	for _, p := range f.Promises {
		from, err := dayStart(p.Day)
		if err != nil {
			return err
		}
		until := from
		if p.Until != "" {
			if until, err = dayStart(p.Until); err != nil {
				return err
			}
		}
		for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
			entry := PromiseEntry{
				ServiceID:       p.ServiceID,
				Day:             d.Format("2006-01-02"),
				Holiday:         p.Holiday,
				PromisedMinutes: p.PromisedMinutes,
			}
			if err := s.UpsertPromise(ctx, entry); err != nil {
				return err
			}
		}
	}

	for _, d := range f.Downtimes {
		started, err := time.Parse(time.RFC3339, d.StartedAt)
		if err != nil {
			return fmt.Errorf("fixture downtime started_at %q: %w", d.StartedAt, err)
		}
		ended, err := time.Parse(time.RFC3339, d.EndedAt)
		if err != nil {
			return fmt.Errorf("fixture downtime ended_at %q: %w", d.EndedAt, err)
		}
		category := d.Category
		if category == "" {
			category = "incident"
		}
		ev := DowntimeEvent{
			ID:        uuid.NewString(),
			ServiceID: d.ServiceID,
			StartedAt: started,
			EndedAt:   ended,
			Minutes:   d.Minutes,
			Reason:    d.Reason,
			Category:  category,
		}
		if ev.Minutes == 0 {
			ev.Minutes = int(ended.Sub(started).Minutes())
		}
		if err := s.InsertDowntime(ctx, ev); err != nil {
			return err
		}
	}

	return nil
}

// SampleFixture returns a small built-in dataset for demos and smoke tests.
func SampleFixture() *Fixture {
	return &Fixture{
		Services: []Service{
			{ID: "SRV-001", Name: "Payments API", Description: "Card and transfer payment processing", Category: "api", Tier: TierCritical, Team: "payments", SLATarget: 99.9, KeyChannel: true},
			{ID: "SRV-002", Name: "Customer Portal", Description: "Public self-service web portal", Category: "web", Tier: TierHigh, Team: "channels", SLATarget: 99.5, KeyChannel: true},
			{ID: "SRV-003", Name: "Reporting Warehouse", Description: "Nightly analytical reporting database", Category: "database", Tier: TierMedium, Team: "data", SLATarget: 99.0},
		},
		Promises: []FixturePromise{
			{ServiceID: "SRV-001", Day: "2024-12-01", Until: "2024-12-31", PromisedMinutes: 1440},
			{ServiceID: "SRV-002", Day: "2024-12-01", Until: "2024-12-31", PromisedMinutes: 1080},
			{ServiceID: "SRV-003", Day: "2024-12-02", Until: "2024-12-06", PromisedMinutes: 600},
		},
		Downtimes: []FixtureDowntime{
			{ServiceID: "SRV-001", StartedAt: "2024-12-10T10:00:00Z", EndedAt: "2024-12-10T10:30:00Z", Reason: "gateway crash loop", Category: "incident"},
			{ServiceID: "SRV-001", StartedAt: "2024-12-15T02:00:00Z", EndedAt: "2024-12-15T02:45:00Z", Reason: "database failover drill", Category: "planned"},
			{ServiceID: "SRV-002", StartedAt: "2024-12-20T08:10:00Z", EndedAt: "2024-12-20T09:05:00Z", Reason: "CDN outage", Category: "incident"},
			{ServiceID: "SRV-002", StartedAt: "2024-12-20T08:40:00Z", EndedAt: "2024-12-20T09:30:00Z", Reason: "login storm after CDN recovery", Category: "incident"},
		},
	}
}
