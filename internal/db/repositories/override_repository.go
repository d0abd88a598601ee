package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wellingtonshopee/analitics/internal/models/orm"
)

// OverrideRepository persists manual override decisions. Every write is a
// single-statement upsert or delete keyed on the tracking number, so two
// concurrent writers resolve to last-writer-wins without a read-modify-write
// race.
type OverrideRepository struct {
	db *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) *OverrideRepository {
	return &OverrideRepository{db}
}

// Set upserts the override for a tracking number, replacing any prior
// action and provenance.
func (r *OverrideRepository) Set(ctx context.Context, trackingNumber, action, user string) error {
	if r.db == nil {
		return ErrStoreUnavailable
	}

	override := orm.ManualOverride{
		TrackingNumber: trackingNumber,
		Action:         action,
		User:           user,
		UpdatedAt:      time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tracking_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"action", "acting_user", "updated_at"}),
	}).Create(&override).Error
}

// Clear deletes the override if present. Returns whether a row was removed;
// clearing a tracking number without an override is not an error.
func (r *OverrideRepository) Clear(ctx context.Context, trackingNumber string) (bool, error) {
	if r.db == nil {
		return false, ErrStoreUnavailable
	}

	result := r.db.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		Delete(&orm.ManualOverride{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// LookupMany returns tracking number -> action for the given candidates.
// Absent entries simply do not appear.
func (r *OverrideRepository) LookupMany(ctx context.Context, trackingNumbers []string) (map[string]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	if len(trackingNumbers) == 0 {
		return map[string]string{}, nil
	}

	var overrides []orm.ManualOverride
	err := r.db.WithContext(ctx).
		Where("tracking_number IN ?", trackingNumbers).
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}

	actions := make(map[string]string, len(overrides))
	for _, o := range overrides {
		actions[o.TrackingNumber] = o.Action
	}
	return actions, nil
}
