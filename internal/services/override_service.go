package services

import (
	"context"
	"errors"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/logging"
	"github.com/wellingtonshopee/analitics/internal/metrics"
)

// ErrInvalidOverrideAction rejects override writes with an unknown action.
var ErrInvalidOverrideAction = errors.New(constants.GetErrorMessage(constants.ErrCodeInvalidAction))

// OverrideStore is the full mutation surface of the override log.
type OverrideStore interface {
	Set(ctx context.Context, trackingNumber, action, user string) error
	Clear(ctx context.Context, trackingNumber string) (bool, error)
	LookupMany(ctx context.Context, trackingNumbers []string) (map[string]string, error)
}

// OverrideService wraps the override log with validation, logging and
// metrics. Writes persist until explicitly cleared and take precedence over
// automatic classification on every subsequent reconciliation run.
type OverrideService struct {
	store   OverrideStore
	metrics *metrics.MetricsRegistry
}

func NewOverrideService(store OverrideStore, metricsReg *metrics.MetricsRegistry) *OverrideService {
	return &OverrideService{store: store, metrics: metricsReg}
}

// Set upserts a human decision for one tracking number.
func (s *OverrideService) Set(ctx context.Context, trackingNumber, action, user string) error {
	if !constants.ValidOverrideAction(action) {
		return ErrInvalidOverrideAction
	}

	if err := s.store.Set(ctx, trackingNumber, action, user); err != nil {
		return err
	}

	logging.Info("Manual override set",
		"tracking_number", trackingNumber,
		"action", action,
		"user", user,
	)
	if s.metrics != nil {
		kind := "set_add"
		if action == constants.OverrideRemove {
			kind = "set_remove"
		}
		s.metrics.OverrideWritesTotal.WithLabelValues(kind).Inc()
	}
	return nil
}

// Clear reverts a tracking number to automatic classification. Returns
// false without error when no override existed.
func (s *OverrideService) Clear(ctx context.Context, trackingNumber string) (bool, error) {
	deleted, err := s.store.Clear(ctx, trackingNumber)
	if err != nil {
		return false, err
	}

	if deleted {
		logging.Info("Manual override cleared", "tracking_number", trackingNumber)
		if s.metrics != nil {
			s.metrics.OverrideWritesTotal.WithLabelValues("clear").Inc()
		}
	}
	return deleted, nil
}

// LookupMany exposes the bulk read for callers outside the engine.
func (s *OverrideService) LookupMany(ctx context.Context, trackingNumbers []string) (map[string]string, error) {
	return s.store.LookupMany(ctx, trackingNumbers)
}
