package services

import (
	"context"
	"fmt"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

// Report identifiers. 1-3 are the engine's three result sets; 4-6 are
// subsets of the divergence report the dashboard links to.
const (
	ReportDivergence    = 1
	ReportNonRouted     = 2
	ReportPoolOnly      = 3
	ReportNeedsAdding   = 4
	ReportFitForRouting = 5
	ReportProcessed     = 6
)

var reportTitles = map[int]string{
	ReportDivergence:    "Divergence: Parcel Sweeper vs Collection Pool",
	ReportNonRouted:     "Received Orders Not Routed",
	ReportPoolOnly:      "Collection Pool Exclusive (Absent From Sweeper)",
	ReportNeedsAdding:   "To Be Added To Collection Pool (Action Needed)",
	ReportFitForRouting: "Fit For Routing (Pool)",
	ReportProcessed:     "Already Added Or Ignored",
}

// ReportService maps report IDs to engine computations and applies the
// suggested-action filter. The detail view and the CSV export both go
// through Build, so what is exported is exactly what was displayed.
type ReportService struct {
	engine *ReconciliationService
}

func NewReportService(engine *ReconciliationService) *ReportService {
	return &ReportService{engine: engine}
}

// Build computes the report for the given id, window and optional
// suggested-action filter. An empty or unknown action filter is ignored.
func (s *ReportService) Build(ctx context.Context, reportID int, window *dtos.DateWindow, action string) (dtos.Report, string, error) {
	title, ok := reportTitles[reportID]
	if !ok {
		return dtos.Report{}, "", fmt.Errorf("%s: %d", constants.GetErrorMessage(constants.ErrCodeInvalidReport), reportID)
	}

	var report dtos.Report
	switch reportID {
	case ReportDivergence:
		report = s.engine.ComputeDivergence(ctx, window)
	case ReportNonRouted:
		report = s.engine.ComputeNonRouted(ctx, window)
	case ReportPoolOnly:
		report = s.engine.ComputePoolOnly(ctx, window)
	case ReportNeedsAdding:
		report = s.engine.ComputeDivergence(ctx, window)
		report.Rows = filterBySeverity(report.Rows, constants.SeverityDanger)
	case ReportFitForRouting:
		report = s.engine.ComputeDivergence(ctx, window)
		report.Rows = rejectBySeverity(report.Rows, constants.SeverityWarning)
	case ReportProcessed:
		report = s.engine.ComputeDivergence(ctx, window)
		report.Rows = filterBySeverity(report.Rows, constants.SeveritySuccess, constants.SeverityWarning)
	}

	if constants.ValidSuggestedAction(action) {
		report.Rows = FilterByAction(report.Rows, action)
	}

	return report, title, nil
}

// FilterByAction keeps the rows whose suggested action matches.
func FilterByAction(rows []dtos.ResultRow, action string) []dtos.ResultRow {
	filtered := make([]dtos.ResultRow, 0, len(rows))
	for _, row := range rows {
		if row.Action == action {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func filterBySeverity(rows []dtos.ResultRow, severities ...string) []dtos.ResultRow {
	keep := make(map[string]struct{}, len(severities))
	for _, sev := range severities {
		keep[sev] = struct{}{}
	}
	filtered := make([]dtos.ResultRow, 0, len(rows))
	for _, row := range rows {
		if _, ok := keep[row.Severity]; ok {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func rejectBySeverity(rows []dtos.ResultRow, severity string) []dtos.ResultRow {
	filtered := make([]dtos.ResultRow, 0, len(rows))
	for _, row := range rows {
		if row.Severity != severity {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
