package orm

import "time"

// ManualOverride records a human decision that supersedes automatic
// classification for one tracking number. At most one row per tracking
// number; writes are last-writer-wins.
type ManualOverride struct {
	ID             int64     `gorm:"primaryKey"`
	TrackingNumber string    `gorm:"column:tracking_number;uniqueIndex:uq_override_tracking;size:64;not null"`
	Action         string    `gorm:"column:action;size:10;not null"`
	User           string    `gorm:"column:acting_user;size:64"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (ManualOverride) TableName() string { return "manual_overrides" }
