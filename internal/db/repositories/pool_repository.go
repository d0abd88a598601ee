package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/models/entities"
)

type PoolRepository struct {
	db *sqlx.DB
}

func NewPoolRepository(db *sqlx.DB) *PoolRepository {
	return &PoolRepository{db}
}

// MembersAmong returns which candidates sit in the pool at the given hub
// with the given status. Hub and status are exact matches.
func (r *PoolRepository) MembersAmong(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var numbers []string
	err := r.db.SelectContext(ctx, &numbers, constants.SelectPoolMembers,
		pq.Array(candidates), hub, status)
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// RecordsWindow returns the pool rows whose file reference date falls inside
// [start, endExclusive).
func (r *PoolRepository) RecordsWindow(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var records []entities.PoolRecord
	err := r.db.SelectContext(ctx, &records, constants.SelectPoolWindow, start, endExclusive)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TrackingNumbersAmong returns which of the candidates exist anywhere in the
// pool store, regardless of date.
func (r *PoolRepository) TrackingNumbersAmong(ctx context.Context, candidates []string) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var numbers []string
	err := r.db.SelectContext(ctx, &numbers, constants.SelectPoolAmong, pq.Array(candidates))
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// CountWindow is the dashboard total of pool rows inside the window.
func (r *PoolRepository) CountWindow(ctx context.Context, start, endExclusive time.Time) (int, error) {
	if r.db == nil {
		return 0, ErrStoreUnavailable
	}

	var count int
	err := r.db.GetContext(ctx, &count, constants.CountPoolWindow, start, endExclusive)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DistinctCities lists the city values present in the pool store.
func (r *PoolRepository) DistinctCities(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var cities []string
	err := r.db.SelectContext(ctx, &cities, constants.SelectDistinctPoolCities)
	if err != nil {
		return nil, err
	}
	return cities, nil
}
