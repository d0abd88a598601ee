package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wellingtonshopee/analitics/internal/models/dtos"
	"github.com/wellingtonshopee/analitics/internal/services"
)

type reportPayload struct {
	Title          string           `json:"title"`
	Rows           []dtos.ResultRow `json:"rows"`
	Degraded       []string         `json:"degraded_sources,omitempty"`
	AwaitingFilter bool             `json:"awaiting_filter,omitempty"`
}

// GetReportHandler handles GET /api/v1/reports/{reportID}.
func GetReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := strconv.Atoi(chi.URLParam(r, "reportID"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Report id must be numeric")
			return
		}

		window := parseWindow(r)
		action := r.URL.Query().Get("action")

		report, title, err := deps.Services.Reports.Build(r.Context(), reportID, window, action)
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		if r.URL.Query().Get("resolve_cities") == "true" {
			report.Rows = services.EnrichCities(r.Context(), deps.Services.Geocoder, report.Rows)
		}

		payload := reportPayload{
			Title:          title,
			Rows:           report.Rows,
			Degraded:       report.Degraded,
			AwaitingFilter: report.AwaitingFilter,
		}
		respondWithSuccess(w, http.StatusOK, &payload)
	}
}

// ExportReportHandler handles GET /api/v1/reports/{reportID}/export.
//
// It reuses the exact Build call the display path uses; the CSV always
// matches what was on screen for the same filters.
func ExportReportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportID, err := strconv.Atoi(chi.URLParam(r, "reportID"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Report id must be numeric")
			return
		}

		window := parseWindow(r)
		action := r.URL.Query().Get("action")

		report, title, err := deps.Services.Reports.Build(r.Context(), reportID, window, action)
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			`attachment; filename="`+deps.Services.Export.FileName(title, window)+`"`)
		if err := deps.Services.Export.WriteCSV(w, report.Rows); err != nil {
			// headers are gone already; just log through the middleware path
			return
		}
	}
}
