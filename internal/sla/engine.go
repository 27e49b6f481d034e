package sla

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidRange is returned for a malformed or inverted date range.
var ErrInvalidRange = errors.New("invalid date range")

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD civil date as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// Compute derives the availability of a service over [from, to] inclusive
// from its per-day promises and downtime events. It is pure: identical
// inputs always produce identical results.
//
// Promised minutes are treated as a daily budget, not a time-of-day window,
// so every measured downtime minute inside the range counts against the
// promise wherever in the day it falls.
func Compute(serviceID, from, to string, promises []Promise, events []Event) (*Result, error) {
	fromDay, err := ParseDay(from)
	if err != nil {
		return nil, err
	}
	toDay, err := ParseDay(to)
	if err != nil {
		return nil, err
	}
	if fromDay.After(toDay) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}

	rangeStart := fromDay
	rangeEnd := toDay.AddDate(0, 0, 1) // exclusive

	// Index promises by day. Days in range with no entry promise zero minutes
	// but still occupy a slot in the breakdown.
	promised := make(map[string]Promise, len(promises))
	for _, p := range promises {
		promised[p.Day] = p
	}

	res := &Result{ServiceID: serviceID, From: from, To: to}

	// Data-quality check: the stored duration must agree with the timestamp
	// span. The span wins; the disagreement is surfaced, not hidden.
	for _, ev := range events {
		span := int(math.Round(ev.End.Sub(ev.Start).Minutes()))
		if ev.ReportedMinutes != 0 && ev.ReportedMinutes != span {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"event %s: stored duration %d min disagrees with timestamp span %d min; using the span",
				ev.ID, ev.ReportedMinutes, span))
		}
	}

	clipped := clipEvents(events, rangeStart, rangeEnd)
	merged := mergeIntervals(clipped)

	windowEnds := rangeEnd
	for d := rangeStart; d.Before(windowEnds); d = d.AddDate(0, 0, 1) {
		day := d.Format(dayLayout)
		next := d.AddDate(0, 0, 1)

		var promisedMin float64
		var holiday bool
		if p, ok := promised[day]; ok {
			promisedMin = float64(p.Minutes)
			holiday = p.Holiday
		}

		var downMin float64
		for _, iv := range merged {
			if dayIv, ok := clip(iv, d, next); ok {
				downMin += dayIv.Minutes()
			}
		}

		res.Days = append(res.Days, DayBreakdown{
			Day:             day,
			Holiday:         holiday,
			PromisedMinutes: promisedMin,
			DowntimeMinutes: downMin,
			AvailabilityPct: percentage(promisedMin, downMin),
		})
		res.PromisedMinutes += promisedMin
	}

	for _, iv := range merged {
		res.DowntimeMinutes += iv.Minutes()
	}

	res.AvailabilityPct = percentage(res.PromisedMinutes, res.DowntimeMinutes)
	if res.AvailabilityPct == nil {
		res.Condition = NoPromiseCondition
	}

	return res, nil
}

// percentage returns the clamped availability percentage, or nil when
// nothing was promised (never a divide by zero, never a silent 100 or 0).
func percentage(promised, downtime float64) *float64 {
	if promised == 0 {
		return nil
	}
	pct := (promised - downtime) / promised * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// clipEvents restricts each event to [start, end), dropping events entirely
// outside the window.
func clipEvents(events []Event, start, end time.Time) []Interval {
	var out []Interval
	for _, ev := range events {
		if iv, ok := clip(Interval{Start: ev.Start, End: ev.End}, start, end); ok {
			out = append(out, iv)
		}
	}
	return out
}

// clip restricts iv to [start, end). The second return is false when nothing
// remains.
func clip(iv Interval, start, end time.Time) (Interval, bool) {
	if !iv.End.After(start) || !iv.Start.Before(end) {
		return Interval{}, false
	}
	if iv.Start.Before(start) {
		iv.Start = start
	}
	if iv.End.After(end) {
		iv.End = end
	}
	return iv, true
}

// mergeIntervals unions overlapping or touching intervals so overlapping
// incidents never double-count their shared minutes. Sort by start, then
// sweep: an interval starting at or before the running end extends it.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
