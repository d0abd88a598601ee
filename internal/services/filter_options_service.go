package services

import (
	"context"
	"time"

	"github.com/wellingtonshopee/analitics/internal/common"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

const filterOptionsCacheKey = "filter_options"

// TrackingOptionsSource and PoolOptionsSource feed the filter dropdowns.
type TrackingOptionsSource interface {
	DistinctStatuses(ctx context.Context) ([]string, error)
	DistinctHubs(ctx context.Context) ([]string, error)
}

type PoolOptionsSource interface {
	DistinctCities(ctx context.Context) ([]string, error)
}

// FilterOptionsService serves the distinct filter values through an
// explicitly scoped cache. Invalidation happens on import completion, not
// by guessing at TTLs; the TTL is only a backstop.
type FilterOptionsService struct {
	cache    common.CacheInterface
	tracking TrackingOptionsSource
	pool     PoolOptionsSource
}

func NewFilterOptionsService(cache common.CacheInterface, tracking TrackingOptionsSource, pool PoolOptionsSource) *FilterOptionsService {
	return &FilterOptionsService{cache: cache, tracking: tracking, pool: pool}
}

// Options returns the current distinct filter values.
func (s *FilterOptionsService) Options(ctx context.Context) (*dtos.FilterOptions, error) {
	cached, err := s.cache.GetOrSet(filterOptionsCacheKey, time.Hour, func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	options, ok := cached.(*dtos.FilterOptions)
	if !ok {
		// cache returned a foreign type (possible after a Redis round-trip);
		// reload from the stores
		return s.load(ctx)
	}
	return options, nil
}

// Invalidate drops the cached values. Called after every committed import.
func (s *FilterOptionsService) Invalidate() {
	s.cache.Delete(filterOptionsCacheKey)
}

func (s *FilterOptionsService) load(ctx context.Context) (*dtos.FilterOptions, error) {
	statuses, err := s.tracking.DistinctStatuses(ctx)
	if err != nil {
		return nil, err
	}
	hubs, err := s.tracking.DistinctHubs(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := s.pool.DistinctCities(ctx)
	if err != nil {
		return nil, err
	}

	return &dtos.FilterOptions{
		TrackingStatuses: statuses,
		DestinationHubs:  hubs,
		Cities:           cities,
	}, nil
}
