package sla

import (
	"context"
	"fmt"

	"github.com/availops/availagent/internal/store"
)

// Repository is the read contract the calculator needs from the warehouse.
// *store.Store satisfies it; tests use fakes.
type Repository interface {
	GetService(ctx context.Context, id string) (*store.Service, error)
	PromisesInRange(ctx context.Context, serviceID, from, to string) ([]store.PromiseEntry, error)
	DowntimeInRange(ctx context.Context, serviceID, from, to string) ([]store.DowntimeEvent, error)
}

// Calculator fetches a service's promises and downtime and runs the pure
// engine over them.
type Calculator struct {
	repo Repository
}

// NewCalculator creates a Calculator backed by the given repository.
func NewCalculator(repo Repository) *Calculator {
	return &Calculator{repo: repo}
}

// Compute calculates realized availability for a service over [from, to]
// inclusive. Fails with store.ErrServiceNotFound for unknown services and
// ErrInvalidRange for malformed or inverted ranges.
func (c *Calculator) Compute(ctx context.Context, serviceID, from, to string) (*Result, error) {
	// Validate the range before touching the repository.
	fromDay, err := ParseDay(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	toDay, err := ParseDay(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if fromDay.After(toDay) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}

	if _, err := c.repo.GetService(ctx, serviceID); err != nil {
		return nil, err
	}

	entries, err := c.repo.PromisesInRange(ctx, serviceID, from, to)
	if err != nil {
		return nil, err
	}
	events, err := c.repo.DowntimeInRange(ctx, serviceID, from, to)
	if err != nil {
		return nil, err
	}

	promises := make([]Promise, 0, len(entries))
	for _, e := range entries {
		promises = append(promises, Promise{
			Day:     e.Day,
			Minutes: e.PromisedMinutes,
			Holiday: e.Holiday,
		})
	}

	engineEvents := make([]Event, 0, len(events))
	for _, ev := range events {
		engineEvents = append(engineEvents, Event{
			ID:              ev.ID,
			Start:           ev.StartedAt,
			End:             ev.EndedAt,
			ReportedMinutes: ev.Minutes,
		})
	}

	return Compute(serviceID, from, to, promises, engineEvents)
}
