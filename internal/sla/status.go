package sla

// Status classifies an availability percentage into operational wording.
type Status string

const (
	StatusExcellent Status = "excellent" // >= 99.9%
	StatusGood      Status = "good"      // >= 99.0%
	StatusDegraded  Status = "degraded"  // >= 95.0%
	StatusCritical  Status = "critical"  // below 95.0%
	StatusNoPromise Status = "no promise defined"
)

// StatusFor maps a (possibly undefined) availability percentage to a Status.
func StatusFor(pct *float64) Status {
	switch {
	case pct == nil:
		return StatusNoPromise
	case *pct >= 99.9:
		return StatusExcellent
	case *pct >= 99.0:
		return StatusGood
	case *pct >= 95.0:
		return StatusDegraded
	default:
		return StatusCritical
	}
}
