package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/models/entities"
)

type SweeperRepository struct {
	db *sqlx.DB
}

func NewSweeperRepository(db *sqlx.DB) *SweeperRepository {
	return &SweeperRepository{db}
}

// BacklogReceivedWindow returns the sweeper rows that qualify for the
// divergence report: backlog count type, hub-received final status, reference
// date inside [start, endExclusive). Duplicate tracking numbers are returned
// as-is; deduplication is the engine's call.
func (r *SweeperRepository) BacklogReceivedWindow(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var records []entities.SweeperRecord
	err := r.db.SelectContext(ctx, &records, constants.SelectSweeperBacklogWindow,
		start, endExclusive, constants.CountTypeBacklog)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TrackingNumbersWindow returns the distinct tracking numbers with any
// sweeper scan inside the window. Used by the pool-only exclusion.
func (r *SweeperRepository) TrackingNumbersWindow(ctx context.Context, start, endExclusive time.Time) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}

	var numbers []string
	err := r.db.SelectContext(ctx, &numbers, constants.SelectSweeperNumbersWindow, start, endExclusive)
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// TrackingNumbersAmong returns which of the candidates exist anywhere in the
// sweeper store, regardless of date.
func (r *SweeperRepository) TrackingNumbersAmong(ctx context.Context, candidates []string) ([]string, error) {
	if r.db == nil {
		return nil, ErrStoreUnavailable
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var numbers []string
	err := r.db.SelectContext(ctx, &numbers, constants.SelectSweeperAmong, pq.Array(candidates))
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

// CountBacklogWindow is the dashboard total: backlog rows with an exact
// hub-received final status inside the window.
func (r *SweeperRepository) CountBacklogWindow(ctx context.Context, start, endExclusive time.Time) (int, error) {
	if r.db == nil {
		return 0, ErrStoreUnavailable
	}

	var count int
	err := r.db.GetContext(ctx, &count, constants.CountSweeperBacklogWindow,
		start, endExclusive, pq.Array(constants.SweeperReceivedStatuses), constants.CountTypeBacklog)
	if err != nil {
		return 0, err
	}
	return count, nil
}
