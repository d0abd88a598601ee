package orm

import "time"

// TrackingRecord is the write-side model for tracking (rastreio) uploads.
// Rows are append-only; duplicate tracking numbers within a batch are
// ignored on conflict instead of updated.
type TrackingRecord struct {
	ID             int64     `gorm:"primaryKey"`
	TrackingNumber string    `gorm:"column:tracking_number;size:64;not null;uniqueIndex:uq_tracking_batch"`
	OrderID        string    `gorm:"column:order_id;size:64"`
	Status         string    `gorm:"column:status;size:64;index"`
	DestinationHub string    `gorm:"column:destination_hub;size:128;index"`
	CurrentStation string    `gorm:"column:current_station;size:128"`
	OnHoldReason   string    `gorm:"column:onhold_reason;size:255"`
	UploadDate     time.Time `gorm:"column:upload_date;index;uniqueIndex:uq_tracking_batch"`
	BatchID        string    `gorm:"column:batch_id;size:36"`
	UploadedBy     string    `gorm:"column:uploaded_by;size:64"`
	CreatedAt      time.Time
}

func (TrackingRecord) TableName() string { return "tracking_records" }
