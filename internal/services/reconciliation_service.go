package services

import (
	"context"
	"time"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/logging"
	"github.com/wellingtonshopee/analitics/internal/metrics"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
	"github.com/wellingtonshopee/analitics/internal/models/entities"
)

// SweeperSource, PoolSource, TrackingSource and OverrideSource are the
// narrow views of the stores the engine needs. A source that cannot be
// queried returns an error; the engine degrades that computation to an empty
// result instead of failing the dashboard.
type SweeperSource interface {
	BacklogReceivedWindow(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error)
	TrackingNumbersWindow(ctx context.Context, start, endExclusive time.Time) ([]string, error)
	TrackingNumbersAmong(ctx context.Context, candidates []string) ([]string, error)
}

type PoolSource interface {
	MembersAmong(ctx context.Context, candidates []string, hub, status string) ([]string, error)
	RecordsWindow(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error)
	TrackingNumbersAmong(ctx context.Context, candidates []string) ([]string, error)
}

type TrackingSource interface {
	InTransitWindow(ctx context.Context, start, endExclusive time.Time, statuses []string, hub string) ([]entities.TrackingRecord, error)
}

type OverrideSource interface {
	LookupMany(ctx context.Context, trackingNumbers []string) (map[string]string, error)
}

// ReconciliationService joins the three record stores by tracking number
// inside a date window and classifies each into a disposition. Nothing is
// persisted; every call recomputes from the stores, so manual overrides and
// fresh uploads take effect on the next query.
type ReconciliationService struct {
	sweeper   SweeperSource
	pool      PoolSource
	tracking  TrackingSource
	overrides OverrideSource

	targetHub string

	// When true, divergence keeps the first classification per tracking
	// number. Default is off: one row per qualifying sweeper scan, matching
	// the historical report.
	dedupe bool

	metrics *metrics.MetricsRegistry
}

func NewReconciliationService(
	sweeper SweeperSource,
	pool PoolSource,
	tracking TrackingSource,
	overrides OverrideSource,
	targetHub string,
	dedupe bool,
	metricsReg *metrics.MetricsRegistry,
) *ReconciliationService {
	return &ReconciliationService{
		sweeper:   sweeper,
		pool:      pool,
		tracking:  tracking,
		overrides: overrides,
		targetHub: targetHub,
		dedupe:    dedupe,
		metrics:   metricsReg,
	}
}

// ComputeDivergence confronts the sweeper backlog with the collection pool.
// Manual overrides strictly take precedence over pool membership.
func (s *ReconciliationService) ComputeDivergence(ctx context.Context, window *dtos.DateWindow) dtos.Report {
	defer s.observe("divergence", time.Now())

	report := dtos.Report{Rows: []dtos.ResultRow{}}
	if window == nil {
		report.AwaitingFilter = true
		return report
	}
	start, end := window.Start, window.EndExclusive()

	sweeperRecords, err := s.sweeper.BacklogReceivedWindow(ctx, start, end)
	if err != nil {
		s.degrade(&report, "divergence", "sweeper", err)
		return report
	}

	candidates := make([]string, 0, len(sweeperRecords))
	for _, rec := range sweeperRecords {
		candidates = append(candidates, rec.TrackingNumber)
	}

	poolSet := map[string]struct{}{}
	members, err := s.pool.MembersAmong(ctx, candidates, s.targetHub, constants.PoolStatusReceived)
	if err != nil {
		s.degrade(&report, "divergence", "pool", err)
	} else {
		for _, m := range members {
			poolSet[m] = struct{}{}
		}
	}

	overrides, err := s.overrides.LookupMany(ctx, candidates)
	if err != nil {
		s.degrade(&report, "divergence", "overrides", err)
		overrides = map[string]string{}
	}

	seen := map[string]struct{}{}
	for _, rec := range sweeperRecords {
		if s.dedupe {
			if _, dup := seen[rec.TrackingNumber]; dup {
				continue
			}
			seen[rec.TrackingNumber] = struct{}{}
		}

		row := dtos.ResultRow{
			TrackingNumber: rec.TrackingNumber,
			Source:         constants.SourceSweeper,
			SweeperStatus:  constants.SweeperStatusBacklog,
		}

		_, inPool := poolSet[rec.TrackingNumber]
		switch overrides[rec.TrackingNumber] {
		case constants.OverrideAdd:
			row.Label = constants.LabelAlreadyInPool
			row.Severity = constants.SeveritySuccess
			row.Action = constants.ActionOK
		case constants.OverrideRemove:
			row.Label = constants.LabelDoNotAdd
			row.Severity = constants.SeverityWarning
			row.Action = constants.ActionIgnore
		default:
			if inPool {
				row.Label = constants.LabelAlreadyInPool
				row.Severity = constants.SeveritySuccess
				row.Action = constants.ActionOK
			} else {
				row.Label = constants.LabelNeedsAdding
				row.Severity = constants.SeverityDanger
				row.Action = constants.ActionAdd
			}
		}

		report.Rows = append(report.Rows, row)
	}

	return report
}

// ComputeNonRouted finds tracking rows bound for the target hub with no
// trace in pool or sweeper. The source select is windowed; the exclusion is
// a global existence check, so items routed before the reporting window are
// never re-flagged.
func (s *ReconciliationService) ComputeNonRouted(ctx context.Context, window *dtos.DateWindow) dtos.Report {
	defer s.observe("non_routed", time.Now())

	report := dtos.Report{Rows: []dtos.ResultRow{}}
	if window == nil {
		report.AwaitingFilter = true
		return report
	}
	start, end := window.Start, window.EndExclusive()

	trackingRecords, err := s.tracking.InTransitWindow(ctx, start, end,
		constants.TrackingInTransitStatuses, s.targetHub)
	if err != nil {
		s.degrade(&report, "non_routed", "tracking", err)
		return report
	}

	candidates := make([]string, 0, len(trackingRecords))
	for _, rec := range trackingRecords {
		candidates = append(candidates, rec.TrackingNumber)
	}

	routed := map[string]struct{}{}
	inPool, err := s.pool.TrackingNumbersAmong(ctx, candidates)
	if err != nil {
		s.degrade(&report, "non_routed", "pool", err)
	} else {
		for _, t := range inPool {
			routed[t] = struct{}{}
		}
	}
	inSweeper, err := s.sweeper.TrackingNumbersAmong(ctx, candidates)
	if err != nil {
		s.degrade(&report, "non_routed", "sweeper", err)
	} else {
		for _, t := range inSweeper {
			routed[t] = struct{}{}
		}
	}

	for _, rec := range trackingRecords {
		if _, ok := routed[rec.TrackingNumber]; ok {
			continue
		}
		report.Rows = append(report.Rows, dtos.ResultRow{
			TrackingNumber: rec.TrackingNumber,
			Label:          constants.LabelNotRouted,
			Severity:       constants.SeverityWarning,
			Action:         constants.ActionRoute,
			Source:         constants.SourceTracking,
			SweeperStatus:  constants.SweeperStatusPending,
		})
	}

	return report
}

// ComputePoolOnly finds pool rows uploaded in the window with no sweeper
// scan in the same window. Needs both stores; either one degrading empties
// the report.
func (s *ReconciliationService) ComputePoolOnly(ctx context.Context, window *dtos.DateWindow) dtos.Report {
	defer s.observe("pool_only", time.Now())

	report := dtos.Report{Rows: []dtos.ResultRow{}}
	if window == nil {
		report.AwaitingFilter = true
		return report
	}
	start, end := window.Start, window.EndExclusive()

	sweeperNumbers, err := s.sweeper.TrackingNumbersWindow(ctx, start, end)
	if err != nil {
		s.degrade(&report, "pool_only", "sweeper", err)
		return report
	}
	swept := make(map[string]struct{}, len(sweeperNumbers))
	for _, t := range sweeperNumbers {
		swept[t] = struct{}{}
	}

	poolRecords, err := s.pool.RecordsWindow(ctx, start, end)
	if err != nil {
		s.degrade(&report, "pool_only", "pool", err)
		return report
	}

	for _, rec := range poolRecords {
		if _, ok := swept[rec.TrackingNumber]; ok {
			continue
		}
		report.Rows = append(report.Rows, dtos.ResultRow{
			TrackingNumber: rec.TrackingNumber,
			Label:          constants.LabelPoolExclusive,
			Severity:       constants.SeverityInfo,
			Action:         constants.ActionVerify,
			Source:         constants.SourcePool,
			SweeperStatus:  constants.SweeperStatusAbsent,
			PoolStatus:     rec.Status,
			City:           rec.City,
			Zipcode:        rec.Zipcode,
		})
	}

	return report
}

func (s *ReconciliationService) degrade(report *dtos.Report, operation, source string, err error) {
	logging.Warn("Source store degraded to empty result",
		"operation", operation,
		"source", source,
		"error", err.Error(),
	)
	if s.metrics != nil {
		s.metrics.DegradedSourcesTotal.WithLabelValues(operation, source).Inc()
	}
	for _, existing := range report.Degraded {
		if existing == source {
			return
		}
	}
	report.Degraded = append(report.Degraded, source)
}

func (s *ReconciliationService) observe(operation string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReconciliationRuns.WithLabelValues(operation).Inc()
	s.metrics.ReconciliationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
