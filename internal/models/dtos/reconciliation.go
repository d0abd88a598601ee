package dtos

import "time"

// ResultRow is one classified tracking number as returned by the
// reconciliation engine. Never persisted; recomputed on every query.
type ResultRow struct {
	TrackingNumber string `json:"tracking_number"`
	Label          string `json:"label"`
	Severity       string `json:"severity"`
	Action         string `json:"action"`
	Source         string `json:"source"`
	SweeperStatus  string `json:"sweeper_status,omitempty"`
	PoolStatus     string `json:"pool_status,omitempty"`
	City           string `json:"city,omitempty"`
	Zipcode        string `json:"zipcode,omitempty"`
}

// Report is the result of one compute operation. Degraded lists the source
// stores that could not be queried; their contribution is empty rather than
// failing the whole report. AwaitingFilter marks a report that could not run
// because no valid date window was supplied.
type Report struct {
	Rows           []ResultRow `json:"rows"`
	Degraded       []string    `json:"degraded_sources,omitempty"`
	AwaitingFilter bool        `json:"awaiting_filter,omitempty"`
}

// DateWindow is an inclusive calendar-day range. EndExclusive returns the
// upper bound used by the queries: start of the day after End, so the whole
// final day is included.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w DateWindow) EndExclusive() time.Time {
	return w.End.AddDate(0, 0, 1)
}
