package orm

import "time"

// PoolRecord is the write-side model for pool uploads. One row per tracking
// number; conflicting uploads update in place.
type PoolRecord struct {
	ID                int64     `gorm:"primaryKey"`
	TrackingNumber    string    `gorm:"column:tracking_number;uniqueIndex:uq_pool_tracking;size:64;not null"`
	Status            string    `gorm:"column:status;size:64"`
	DestinationHub    string    `gorm:"column:destination_hub;size:128"`
	City              string    `gorm:"column:city;size:128"`
	Zipcode           string    `gorm:"column:zipcode;size:20"`
	Region            string    `gorm:"column:region;size:128"`
	LHTrip            string    `gorm:"column:lh_trip;size:64"`
	FileReferenceDate time.Time `gorm:"column:file_reference_date;index"`
	BatchID           string    `gorm:"column:batch_id;size:36"`
	UploadedBy        string    `gorm:"column:uploaded_by;size:64"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (PoolRecord) TableName() string { return "pool_records" }
