package entities

import "time"

// SweeperRecord is a row of the parcel-sweeper store. The same tracking
// number may recur across reference dates (repeated scans); uploads upsert
// by (tracking_number, reference_date).
type SweeperRecord struct {
	ID             int64     `db:"id"`
	TrackingNumber string    `db:"tracking_number"`
	FinalStatus    string    `db:"final_status"`
	CountType      string    `db:"count_type"`
	NextStepAction string    `db:"next_step_action"`
	OnHoldTimes    int       `db:"on_hold_times"`
	ReferenceDate  time.Time `db:"reference_date"`
}
