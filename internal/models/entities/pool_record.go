package entities

import "time"

// PoolRecord is a row of the collection-pool store. Tracking numbers are
// unique in this store; uploads upsert by tracking number.
type PoolRecord struct {
	ID                int64     `db:"id"`
	TrackingNumber    string    `db:"tracking_number"`
	Status            string    `db:"status"`
	DestinationHub    string    `db:"destination_hub"`
	City              string    `db:"city"`
	Zipcode           string    `db:"zipcode"`
	FileReferenceDate time.Time `db:"file_reference_date"`
}
