package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

// PoolStatsSource and SweeperStatsSource provide the two windowed totals the
// dashboard shows alongside the reconciliation KPIs.
type PoolStatsSource interface {
	CountWindow(ctx context.Context, start, endExclusive time.Time) (int, error)
}

type SweeperStatsSource interface {
	CountBacklogWindow(ctx context.Context, start, endExclusive time.Time) (int, error)
}

// DashboardService derives KPI counts from the engine's output. It holds no
// state of its own; everything is recomputed per request.
type DashboardService struct {
	engine       *ReconciliationService
	poolStats    PoolStatsSource
	sweeperStats SweeperStatsSource
}

func NewDashboardService(engine *ReconciliationService, poolStats PoolStatsSource, sweeperStats SweeperStatsSource) *DashboardService {
	return &DashboardService{
		engine:       engine,
		poolStats:    poolStats,
		sweeperStats: sweeperStats,
	}
}

// Build runs the three computations and the two totals. The reads are
// independent queries against independent stores, so they fan out; each one
// stays individually fault-isolated and a degraded source zeroes its own
// cards only.
func (s *DashboardService) Build(ctx context.Context, window *dtos.DateWindow) dtos.Dashboard {
	dashboard := dtos.Dashboard{Window: window}
	if window == nil {
		dashboard.AwaitingFilter = true
		return dashboard
	}
	start, end := window.Start, window.EndExclusive()

	var (
		divergence, nonRouted, poolOnly dtos.Report
		totalPool, totalBacklog         int
		poolCountDegraded               bool
		sweeperCountDegraded            bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		divergence = s.engine.ComputeDivergence(gctx, window)
		return nil
	})
	g.Go(func() error {
		nonRouted = s.engine.ComputeNonRouted(gctx, window)
		return nil
	})
	g.Go(func() error {
		poolOnly = s.engine.ComputePoolOnly(gctx, window)
		return nil
	})
	g.Go(func() error {
		count, err := s.poolStats.CountWindow(gctx, start, end)
		if err != nil {
			poolCountDegraded = true
			return nil
		}
		totalPool = count
		return nil
	})
	g.Go(func() error {
		count, err := s.sweeperStats.CountBacklogWindow(gctx, start, end)
		if err != nil {
			sweeperCountDegraded = true
			return nil
		}
		totalBacklog = count
		return nil
	})
	_ = g.Wait()

	kpis := dtos.KPISet{
		TotalPool:           totalPool,
		TotalSweeperBacklog: totalBacklog,
		TotalDivergence:     len(divergence.Rows),
		NonRouted:           len(nonRouted.Rows),
		PoolOnly:            len(poolOnly.Rows),
	}
	for _, row := range divergence.Rows {
		switch row.Severity {
		case constants.SeverityDanger:
			kpis.ToBeAdded++
		case constants.SeveritySuccess:
			kpis.AlreadyInPool++
		}
		if row.Severity != constants.SeverityWarning {
			kpis.FitForRouting++
		}
	}
	kpis.AlreadyInPoolPct = percentage(kpis.AlreadyInPool, kpis.TotalDivergence)

	dashboard.KPIs = kpis
	dashboard.TopCities = topGroups(poolOnly.Rows, 10, func(r dtos.ResultRow) string { return r.City })
	dashboard.Dispositions = topGroups(divergence.Rows, 10, func(r dtos.ResultRow) string { return r.Label })

	dashboard.Degraded = mergeDegraded(divergence.Degraded, nonRouted.Degraded, poolOnly.Degraded)
	if poolCountDegraded {
		dashboard.Degraded = mergeDegraded(dashboard.Degraded, []string{"pool"})
	}
	if sweeperCountDegraded {
		dashboard.Degraded = mergeDegraded(dashboard.Degraded, []string{"sweeper"})
	}

	return dashboard
}

// percentage guards the empty-window case: no rows means 0%, not a division
// error.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func topGroups(rows []dtos.ResultRow, n int, key func(dtos.ResultRow) string) []dtos.GroupCount {
	counts := map[string]int{}
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		counts[k]++
	}

	groups := make([]dtos.GroupCount, 0, len(counts))
	for k, c := range counts {
		groups = append(groups, dtos.GroupCount{Key: k, Count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})

	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

func mergeDegraded(lists ...[]string) []string {
	var merged []string
	seen := map[string]struct{}{}
	for _, list := range lists {
		for _, source := range list {
			if _, ok := seen[source]; ok {
				continue
			}
			seen[source] = struct{}{}
			merged = append(merged, source)
		}
	}
	return merged
}
