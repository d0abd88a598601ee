package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellingtonshopee/analitics/internal/models/orm"
)

// Upload chunk size. Tens of thousands of rows per file is normal; chunking
// keeps statement sizes and memory bounded.
const importChunkSize = 500

// ImportRepository commits parsed upload batches. Each batch is one
// transaction: either every row and the bookkeeping record land, or none do.
type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{db}
}

// SavePoolBatch upserts pool rows by tracking number.
func (r *ImportRepository) SavePoolBatch(ctx context.Context, batch *orm.ImportBatch, records []orm.PoolRecord) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tracking_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "destination_hub", "city", "zipcode", "region",
				"lh_trip", "file_reference_date", "batch_id", "uploaded_by", "updated_at",
			}),
		}).CreateInBatches(records, importChunkSize).Error
	})
}

// SaveSweeperBatch upserts sweeper rows by (tracking number, reference date).
func (r *ImportRepository) SaveSweeperBatch(ctx context.Context, batch *orm.ImportBatch, records []orm.SweeperRecord) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tracking_number"}, {Name: "reference_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"scanned_status", "final_status", "count_type", "next_step_action",
				"on_hold_times", "operator", "batch_id", "uploaded_by", "updated_at",
			}),
		}).CreateInBatches(records, importChunkSize).Error
	})
}

// SaveTrackingBatch inserts tracking rows; rows already present for the same
// upload date are left untouched.
func (r *ImportRepository) SaveTrackingBatch(ctx context.Context, batch *orm.ImportBatch, records []orm.TrackingRecord) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			DoNothing: true,
		}).CreateInBatches(records, importChunkSize).Error
	})
}
