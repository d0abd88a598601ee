package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/models/entities"
)

type TrackingRepository struct {
	db *sqlx.DB
}

func NewTrackingRepository(db *sqlx.DB) *TrackingRepository {
	return &TrackingRepository{db}
}

// InTransitWindow returns the tracking rows in one of the given statuses,
// bound for the given hub, uploaded inside [start, endExclusive).
func (r *TrackingRepository) InTransitWindow(ctx context.Context, start, endExclusive time.Time, statuses []string, hub string) ([]entities.TrackingRecord, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var records []entities.TrackingRecord
	err := r.db.SelectContext(ctx, &records, constants.SelectTrackingWindow,
		start, endExclusive, pq.Array(statuses), hub)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DistinctStatuses lists the status values present in the tracking store.
func (r *TrackingRepository) DistinctStatuses(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var statuses []string
	err := r.db.SelectContext(ctx, &statuses, constants.SelectDistinctTrackingStatuses)
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

// DistinctHubs lists destination hubs across tracking and pool stores.
func (r *TrackingRepository) DistinctHubs(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var hubs []string
	err := r.db.SelectContext(ctx, &hubs, constants.SelectDistinctHubs)
	if err != nil {
		return nil, err
	}
	return hubs, nil
}
