package orm

import "time"

// SweeperRecord is the write-side model for sweeper uploads. Uniqueness is
// the composite (tracking_number, reference_date) so repeated scans on
// different days coexist while same-day re-uploads update in place.
type SweeperRecord struct {
	ID             int64     `gorm:"primaryKey"`
	TrackingNumber string    `gorm:"column:tracking_number;uniqueIndex:uq_sweeper_day;size:64;not null"`
	ReferenceDate  time.Time `gorm:"column:reference_date;uniqueIndex:uq_sweeper_day;index"`
	ScannedStatus  string    `gorm:"column:scanned_status;size:128"`
	FinalStatus    string    `gorm:"column:final_status;size:128;index"`
	CountType      string    `gorm:"column:count_type;size:64"`
	NextStepAction string    `gorm:"column:next_step_action;size:128"`
	OnHoldTimes    int       `gorm:"column:on_hold_times;default:0"`
	Operator       string    `gorm:"column:operator;size:128"`
	BatchID        string    `gorm:"column:batch_id;size:36"`
	UploadedBy     string    `gorm:"column:uploaded_by;size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SweeperRecord) TableName() string { return "sweeper_records" }
