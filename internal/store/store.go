package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrServiceNotFound is returned when a service id does not exist.
var ErrServiceNotFound = errors.New("service not found")

// Store wraps a sql.DB holding the availability warehouse.
type Store struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate runs all schema migrations.
func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

// schema contains the full warehouse schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS services (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT 'web' CHECK(category IN ('web','api','database','channel','batch')),
    tier TEXT NOT NULL DEFAULT 'medium' CHECK(tier IN ('low','medium','high','critical')),
    team TEXT NOT NULL DEFAULT '',
    sla_target REAL NOT NULL DEFAULT 99.9,
    key_channel INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_services_name ON services(name);

CREATE TABLE IF NOT EXISTS sla_promises (
    service_id TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
    day TEXT NOT NULL,
    weekday TEXT NOT NULL DEFAULT '',
    holiday INTEGER NOT NULL DEFAULT 0,
    promised_minutes INTEGER NOT NULL CHECK(promised_minutes BETWEEN 0 AND 1440),
    PRIMARY KEY(service_id, day)
);

CREATE INDEX IF NOT EXISTS idx_promises_day ON sla_promises(day);

CREATE TABLE IF NOT EXISTS downtime_events (
    id TEXT PRIMARY KEY,
    service_id TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
    day TEXT NOT NULL,
    started_at TEXT NOT NULL,
    ended_at TEXT NOT NULL,
    minutes INTEGER NOT NULL DEFAULT 0,
    reason TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT 'incident' CHECK(category IN ('planned','incident')),
    CHECK(ended_at > started_at)
);

CREATE INDEX IF NOT EXISTS idx_downtime_service ON downtime_events(service_id, started_at);
CREATE INDEX IF NOT EXISTS idx_downtime_day ON downtime_events(day);
`

// ListServices returns all services, optionally filtered by a substring
// match against the service name (case-insensitive). An empty result is
// valid, not an error.
func (s *Store) ListServices(ctx context.Context, filter string) ([]Service, error) {
	q := `SELECT id, name, description, category, tier, team, sla_target, key_channel
	      FROM services`
	args := []any{}
	if filter != "" {
		q += ` WHERE name LIKE ? COLLATE NOCASE`
		args = append(args, "%"+filter+"%")
	}
	q += ` ORDER BY name`

	rows, err := s.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var svc Service
		var keyChannel int
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Category,
			&svc.Tier, &svc.Team, &svc.SLATarget, &keyChannel); err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		svc.KeyChannel = keyChannel != 0
		services = append(services, svc)
	}
	return services, rows.Err()
}

// GetService returns a single service by id, or ErrServiceNotFound.
func (s *Store) GetService(ctx context.Context, id string) (*Service, error) {
	var svc Service
	var keyChannel int
	err := s.QueryRowContext(ctx,
		`SELECT id, name, description, category, tier, team, sla_target, key_channel
		 FROM services WHERE id = ?`, id).
		Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Category,
			&svc.Tier, &svc.Team, &svc.SLATarget, &keyChannel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %q: %w", id, ErrServiceNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching service %q: %w", id, err)
	}
	svc.KeyChannel = keyChannel != 0
	return &svc, nil
}

// PromisesInRange returns the promise entries for a service whose day falls
// inside [from, to], both endpoints inclusive, ordered by day. Days without
// an entry are simply absent; callers decide how to treat the gaps.
func (s *Store) PromisesInRange(ctx context.Context, serviceID, from, to string) ([]PromiseEntry, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT service_id, day, weekday, holiday, promised_minutes
		 FROM sla_promises
		 WHERE service_id = ? AND day BETWEEN ? AND ?
		 ORDER BY day`, serviceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching promises: %w", err)
	}
	defer rows.Close()

	var entries []PromiseEntry
	for rows.Next() {
		var e PromiseEntry
		var holiday int
		if err := rows.Scan(&e.ServiceID, &e.Day, &e.Weekday, &holiday, &e.PromisedMinutes); err != nil {
			return nil, fmt.Errorf("scanning promise: %w", err)
		}
		e.Holiday = holiday != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DowntimeInRange returns all downtime events for a service whose interval
// intersects [from 00:00, to+1day 00:00), ordered by start time. Timestamps
// are stored as RFC 3339 UTC, so lexical comparison matches time order.
func (s *Store) DowntimeInRange(ctx context.Context, serviceID, from, to string) ([]DowntimeEvent, error) {
	fromTS, err := dayStart(from)
	if err != nil {
		return nil, err
	}
	toTS, err := dayStart(to)
	if err != nil {
		return nil, err
	}
	endTS := toTS.AddDate(0, 0, 1)

	rows, err := s.QueryContext(ctx,
		`SELECT id, service_id, day, started_at, ended_at, minutes, reason, category
		 FROM downtime_events
		 WHERE service_id = ? AND ended_at > ? AND started_at < ?
		 ORDER BY started_at`,
		serviceID, fromTS.Format(time.RFC3339), endTS.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("fetching downtime: %w", err)
	}
	defer rows.Close()

	var events []DowntimeEvent
	for rows.Next() {
		var ev DowntimeEvent
		var started, ended string
		if err := rows.Scan(&ev.ID, &ev.ServiceID, &ev.Day, &started, &ended,
			&ev.Minutes, &ev.Reason, &ev.Category); err != nil {
			return nil, fmt.Errorf("scanning downtime event: %w", err)
		}
		if ev.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("event %s: bad started_at %q: %w", ev.ID, started, err)
		}
		if ev.EndedAt, err = time.Parse(time.RFC3339, ended); err != nil {
			return nil, fmt.Errorf("event %s: bad ended_at %q: %w", ev.ID, ended, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// UpsertService inserts or replaces a service row.
func (s *Store) UpsertService(ctx context.Context, svc Service) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO services (id, name, description, category, tier, team, sla_target, key_channel)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, description=excluded.description,
		   category=excluded.category, tier=excluded.tier, team=excluded.team,
		   sla_target=excluded.sla_target, key_channel=excluded.key_channel`,
		svc.ID, svc.Name, svc.Description, svc.Category, svc.Tier, svc.Team,
		svc.SLATarget, boolInt(svc.KeyChannel))
	if err != nil {
		return fmt.Errorf("upserting service %q: %w", svc.ID, err)
	}
	return nil
}

// UpsertPromise inserts or replaces a promise entry. The weekday is derived
// from the day when not supplied.
func (s *Store) UpsertPromise(ctx context.Context, e PromiseEntry) error {
	if e.Weekday == "" {
		if d, err := dayStart(e.Day); err == nil {
			e.Weekday = d.Weekday().String()
		}
	}
	_, err := s.ExecContext(ctx,
		`INSERT INTO sla_promises (service_id, day, weekday, holiday, promised_minutes)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(service_id, day) DO UPDATE SET
		   weekday=excluded.weekday, holiday=excluded.holiday,
		   promised_minutes=excluded.promised_minutes`,
		e.ServiceID, e.Day, e.Weekday, boolInt(e.Holiday), e.PromisedMinutes)
	if err != nil {
		return fmt.Errorf("upserting promise for %s/%s: %w", e.ServiceID, e.Day, err)
	}
	return nil
}

// InsertDowntime stores a downtime event. The day bucket is derived from the
// start timestamp when not supplied.
func (s *Store) InsertDowntime(ctx context.Context, ev DowntimeEvent) error {
	if ev.Day == "" {
		ev.Day = ev.StartedAt.UTC().Format("2006-01-02")
	}
	_, err := s.ExecContext(ctx,
		`INSERT INTO downtime_events (id, service_id, day, started_at, ended_at, minutes, reason, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.ServiceID, ev.Day,
		ev.StartedAt.UTC().Format(time.RFC3339), ev.EndedAt.UTC().Format(time.RFC3339),
		ev.Minutes, ev.Reason, ev.Category)
	if err != nil {
		return fmt.Errorf("inserting downtime event %q: %w", ev.ID, err)
	}
	return nil
}

// dayStart parses a YYYY-MM-DD civil date as midnight UTC.
func dayStart(day string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
