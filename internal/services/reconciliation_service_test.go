package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
	"github.com/wellingtonshopee/analitics/internal/models/entities"
)

type mockSweeperSource struct {
	BacklogReceivedWindowFunc func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error)
	TrackingNumbersWindowFunc func(ctx context.Context, start, endExclusive time.Time) ([]string, error)
	TrackingNumbersAmongFunc  func(ctx context.Context, candidates []string) ([]string, error)
}

func (m *mockSweeperSource) BacklogReceivedWindow(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
	return m.BacklogReceivedWindowFunc(ctx, start, endExclusive)
}

func (m *mockSweeperSource) TrackingNumbersWindow(ctx context.Context, start, endExclusive time.Time) ([]string, error) {
	return m.TrackingNumbersWindowFunc(ctx, start, endExclusive)
}

func (m *mockSweeperSource) TrackingNumbersAmong(ctx context.Context, candidates []string) ([]string, error) {
	return m.TrackingNumbersAmongFunc(ctx, candidates)
}

type mockPoolSource struct {
	MembersAmongFunc         func(ctx context.Context, candidates []string, hub, status string) ([]string, error)
	RecordsWindowFunc        func(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error)
	TrackingNumbersAmongFunc func(ctx context.Context, candidates []string) ([]string, error)
}

func (m *mockPoolSource) MembersAmong(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
	return m.MembersAmongFunc(ctx, candidates, hub, status)
}

func (m *mockPoolSource) RecordsWindow(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error) {
	return m.RecordsWindowFunc(ctx, start, endExclusive)
}

func (m *mockPoolSource) TrackingNumbersAmong(ctx context.Context, candidates []string) ([]string, error) {
	return m.TrackingNumbersAmongFunc(ctx, candidates)
}

type mockTrackingSource struct {
	InTransitWindowFunc func(ctx context.Context, start, endExclusive time.Time, statuses []string, hub string) ([]entities.TrackingRecord, error)
}

func (m *mockTrackingSource) InTransitWindow(ctx context.Context, start, endExclusive time.Time, statuses []string, hub string) ([]entities.TrackingRecord, error) {
	return m.InTransitWindowFunc(ctx, start, endExclusive, statuses, hub)
}

type mockOverrideSource struct {
	LookupManyFunc func(ctx context.Context, trackingNumbers []string) (map[string]string, error)
}

func (m *mockOverrideSource) LookupMany(ctx context.Context, trackingNumbers []string) (map[string]string, error) {
	return m.LookupManyFunc(ctx, trackingNumbers)
}

func sweeperRows(trackingNumbers ...string) []entities.SweeperRecord {
	records := make([]entities.SweeperRecord, 0, len(trackingNumbers))
	for _, t := range trackingNumbers {
		records = append(records, entities.SweeperRecord{
			TrackingNumber: t,
			FinalStatus:    "LMHub_Received",
			CountType:      "Backlog",
		})
	}
	return records
}

func testWindow() *dtos.DateWindow {
	return &dtos.DateWindow{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func newTestEngine(sweeper SweeperSource, pool PoolSource, tracking TrackingSource, overrides OverrideSource) *ReconciliationService {
	return NewReconciliationService(sweeper, pool, tracking, overrides, constants.DefaultTargetHub, false, nil)
}

func emptyOverrides() *mockOverrideSource {
	return &mockOverrideSource{
		LookupManyFunc: func(ctx context.Context, trackingNumbers []string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}
}

func TestComputeDivergenceClassification(t *testing.T) {
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return sweeperRows("BR001", "BR002"), nil
		},
	}
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			if hub != constants.DefaultTargetHub {
				t.Errorf("expected hub %q, got %q", constants.DefaultTargetHub, hub)
			}
			if status != constants.PoolStatusReceived {
				t.Errorf("expected status %q, got %q", constants.PoolStatusReceived, status)
			}
			return []string{"BR001"}, nil
		},
	}

	engine := newTestEngine(sweeper, pool, nil, emptyOverrides())
	report := engine.ComputeDivergence(context.Background(), testWindow())

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if len(report.Degraded) != 0 {
		t.Fatalf("expected no degraded sources, got %v", report.Degraded)
	}

	inPool := report.Rows[0]
	if inPool.TrackingNumber != "BR001" ||
		inPool.Label != constants.LabelAlreadyInPool ||
		inPool.Severity != constants.SeveritySuccess ||
		inPool.Action != constants.ActionOK {
		t.Errorf("unexpected classification for pooled row: %+v", inPool)
	}

	missing := report.Rows[1]
	if missing.TrackingNumber != "BR002" ||
		missing.Label != constants.LabelNeedsAdding ||
		missing.Severity != constants.SeverityDanger ||
		missing.Action != constants.ActionAdd {
		t.Errorf("unexpected classification for missing row: %+v", missing)
	}
}

func TestComputeDivergenceOverridePrecedence(t *testing.T) {
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return sweeperRows("BR001", "BR002", "BR003"), nil
		},
	}
	// BR001 is in the pool but overridden REMOVE; BR002 is absent but
	// overridden ADD. Overrides must win both ways.
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			return []string{"BR001"}, nil
		},
	}
	overrides := &mockOverrideSource{
		LookupManyFunc: func(ctx context.Context, trackingNumbers []string) (map[string]string, error) {
			return map[string]string{
				"BR001": constants.OverrideRemove,
				"BR002": constants.OverrideAdd,
			}, nil
		},
	}

	engine := newTestEngine(sweeper, pool, nil, overrides)
	report := engine.ComputeDivergence(context.Background(), testWindow())

	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report.Rows))
	}
	if report.Rows[0].Label != constants.LabelDoNotAdd || report.Rows[0].Action != constants.ActionIgnore {
		t.Errorf("REMOVE override did not win over pool membership: %+v", report.Rows[0])
	}
	if report.Rows[1].Label != constants.LabelAlreadyInPool || report.Rows[1].Action != constants.ActionOK {
		t.Errorf("ADD override did not win over pool absence: %+v", report.Rows[1])
	}
	if report.Rows[2].Label != constants.LabelNeedsAdding {
		t.Errorf("unoverridden row should classify automatically: %+v", report.Rows[2])
	}
}

func TestComputeDivergenceIsIdempotent(t *testing.T) {
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return sweeperRows("BR001", "BR002"), nil
		},
	}
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			return []string{"BR001"}, nil
		},
	}

	engine := newTestEngine(sweeper, pool, nil, emptyOverrides())
	first := engine.ComputeDivergence(context.Background(), testWindow())
	second := engine.ComputeDivergence(context.Background(), testWindow())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation over unchanged stores differed:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeDivergenceWindowIncludesFinalDay(t *testing.T) {
	var gotStart, gotEnd time.Time
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			gotStart, gotEnd = start, endExclusive
			return nil, nil
		},
	}
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			return nil, nil
		},
	}

	window := testWindow()
	engine := newTestEngine(sweeper, pool, nil, emptyOverrides())
	engine.ComputeDivergence(context.Background(), window)

	if !gotStart.Equal(window.Start) {
		t.Errorf("expected start %v, got %v", window.Start, gotStart)
	}
	wantEnd := window.End.AddDate(0, 0, 1)
	if !gotEnd.Equal(wantEnd) {
		t.Errorf("expected exclusive end %v (day after End), got %v", wantEnd, gotEnd)
	}
}

func TestComputeDivergenceNilWindowAwaitsFilter(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)
	report := engine.ComputeDivergence(context.Background(), nil)

	if !report.AwaitingFilter {
		t.Error("expected AwaitingFilter with no window")
	}
	if len(report.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(report.Rows))
	}
}

func TestComputeDivergencePoolDegradedStillClassifies(t *testing.T) {
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return sweeperRows("BR001", "BR002"), nil
		},
	}
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}

	engine := newTestEngine(sweeper, pool, nil, emptyOverrides())
	report := engine.ComputeDivergence(context.Background(), testWindow())

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows despite pool outage, got %d", len(report.Rows))
	}
	for _, row := range report.Rows {
		if row.Label != constants.LabelNeedsAdding {
			t.Errorf("with pool degraded every row should need adding: %+v", row)
		}
	}
	if !reflect.DeepEqual(report.Degraded, []string{"pool"}) {
		t.Errorf("expected degraded [pool], got %v", report.Degraded)
	}
}

func TestComputeDivergenceSweeperDegradedEmptiesReport(t *testing.T) {
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return nil, errors.New("connection refused")
		},
	}

	engine := newTestEngine(sweeper, nil, nil, nil)
	report := engine.ComputeDivergence(context.Background(), testWindow())

	if len(report.Rows) != 0 {
		t.Errorf("expected empty report, got %d rows", len(report.Rows))
	}
	if !reflect.DeepEqual(report.Degraded, []string{"sweeper"}) {
		t.Errorf("expected degraded [sweeper], got %v", report.Degraded)
	}
}

func TestComputeDivergenceDedupeToggle(t *testing.T) {
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return sweeperRows("BR001", "BR001", "BR002"), nil
		},
	}
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			return nil, nil
		},
	}

	// Default: one row per qualifying scan, duplicates preserved.
	engine := newTestEngine(sweeper, pool, nil, emptyOverrides())
	report := engine.ComputeDivergence(context.Background(), testWindow())
	if len(report.Rows) != 3 {
		t.Errorf("expected duplicates preserved (3 rows), got %d", len(report.Rows))
	}

	// With dedupe: first classification per tracking number wins.
	deduped := NewReconciliationService(sweeper, pool, nil, emptyOverrides(),
		constants.DefaultTargetHub, true, nil)
	report = deduped.ComputeDivergence(context.Background(), testWindow())
	if len(report.Rows) != 2 {
		t.Errorf("expected deduped report (2 rows), got %d", len(report.Rows))
	}
}

func TestComputeNonRouted(t *testing.T) {
	tracking := &mockTrackingSource{
		InTransitWindowFunc: func(ctx context.Context, start, endExclusive time.Time, statuses []string, hub string) ([]entities.TrackingRecord, error) {
			if !reflect.DeepEqual(statuses, constants.TrackingInTransitStatuses) {
				t.Errorf("unexpected status filter: %v", statuses)
			}
			return []entities.TrackingRecord{
				{TrackingNumber: "BR010"},
				{TrackingNumber: "BR011"},
				{TrackingNumber: "BR012"},
			}, nil
		},
	}
	// BR010 was routed via the pool, BR011 via the sweeper. Only BR012 is
	// flagged. The exclusion lookups are global, not windowed.
	pool := &mockPoolSource{
		TrackingNumbersAmongFunc: func(ctx context.Context, candidates []string) ([]string, error) {
			return []string{"BR010"}, nil
		},
	}
	sweeper := &mockSweeperSource{
		TrackingNumbersAmongFunc: func(ctx context.Context, candidates []string) ([]string, error) {
			return []string{"BR011"}, nil
		},
	}

	engine := newTestEngine(sweeper, pool, tracking, nil)
	report := engine.ComputeNonRouted(context.Background(), testWindow())

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.TrackingNumber != "BR012" ||
		row.Label != constants.LabelNotRouted ||
		row.Severity != constants.SeverityWarning ||
		row.Action != constants.ActionRoute {
		t.Errorf("unexpected non-routed row: %+v", row)
	}
}

func TestComputePoolOnly(t *testing.T) {
	sweeper := &mockSweeperSource{
		TrackingNumbersWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]string, error) {
			return []string{"BR020"}, nil
		},
	}
	pool := &mockPoolSource{
		RecordsWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error) {
			return []entities.PoolRecord{
				{TrackingNumber: "BR020", Status: "LMHub_Received"},
				{TrackingNumber: "BR021", Status: "LMHub_Received", City: "Muriaé", Zipcode: "36880000"},
			}, nil
		},
	}

	engine := newTestEngine(sweeper, pool, nil, nil)
	report := engine.ComputePoolOnly(context.Background(), testWindow())

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.TrackingNumber != "BR021" ||
		row.Label != constants.LabelPoolExclusive ||
		row.Action != constants.ActionVerify ||
		row.City != "Muriaé" ||
		row.Zipcode != "36880000" {
		t.Errorf("unexpected pool-only row: %+v", row)
	}
}

func TestPoolOnlyAndDivergenceAreDisjoint(t *testing.T) {
	// BR050 appears in both stores in the window; BR051 only in the pool.
	sweeper := &mockSweeperSource{
		BacklogReceivedWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.SweeperRecord, error) {
			return sweeperRows("BR050"), nil
		},
		TrackingNumbersWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]string, error) {
			return []string{"BR050"}, nil
		},
	}
	pool := &mockPoolSource{
		MembersAmongFunc: func(ctx context.Context, candidates []string, hub, status string) ([]string, error) {
			return []string{"BR050"}, nil
		},
		RecordsWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error) {
			return []entities.PoolRecord{
				{TrackingNumber: "BR050"},
				{TrackingNumber: "BR051"},
			}, nil
		},
	}

	engine := newTestEngine(sweeper, pool, nil, emptyOverrides())
	divergence := engine.ComputeDivergence(context.Background(), testWindow())
	poolOnly := engine.ComputePoolOnly(context.Background(), testWindow())

	inDivergence := map[string]struct{}{}
	for _, row := range divergence.Rows {
		inDivergence[row.TrackingNumber] = struct{}{}
	}
	for _, row := range poolOnly.Rows {
		if _, ok := inDivergence[row.TrackingNumber]; ok {
			t.Errorf("tracking number %s appears in both reports", row.TrackingNumber)
		}
	}
	if len(poolOnly.Rows) != 1 || poolOnly.Rows[0].TrackingNumber != "BR051" {
		t.Errorf("expected only BR051 in pool-only, got %+v", poolOnly.Rows)
	}
}

func TestComputePoolOnlyDegradesWhenEitherStoreFails(t *testing.T) {
	sweeper := &mockSweeperSource{
		TrackingNumbersWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]string, error) {
			return nil, nil
		},
	}
	pool := &mockPoolSource{
		RecordsWindowFunc: func(ctx context.Context, start, endExclusive time.Time) ([]entities.PoolRecord, error) {
			return nil, errors.New("connection refused")
		},
	}

	engine := newTestEngine(sweeper, pool, nil, nil)
	report := engine.ComputePoolOnly(context.Background(), testWindow())

	if len(report.Rows) != 0 {
		t.Errorf("expected empty report, got %d rows", len(report.Rows))
	}
	if !reflect.DeepEqual(report.Degraded, []string{"pool"}) {
		t.Errorf("expected degraded [pool], got %v", report.Degraded)
	}
}
