package entities

import "time"

// TrackingRecord is a row of the tracking (rastreio) store as read by the
// report queries. Rows are immutable per import batch; re-imports for the
// same window supersede by insertion.
type TrackingRecord struct {
	ID             int64     `db:"id"`
	TrackingNumber string    `db:"tracking_number"`
	Status         string    `db:"status"`
	DestinationHub string    `db:"destination_hub"`
	CurrentStation string    `db:"current_station"`
	UploadDate     time.Time `db:"upload_date"`
}
