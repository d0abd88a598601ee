package api

import (
	"net/http"
)

// GetDashboardHandler handles GET /api/v1/dashboard.
//
// Without a valid start/end pair the dashboard answers with the
// awaiting-filter indicator rather than an error, so the UI can render the
// empty state.
func GetDashboardHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window := parseWindow(r)
		dashboard := deps.Services.Dashboard.Build(r.Context(), window)
		respondWithSuccess(w, http.StatusOK, &dashboard)
	}
}

// GetFilterOptionsHandler handles GET /api/v1/filter-options.
func GetFilterOptionsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := deps.Services.FilterOptions.Options(r.Context())
		if err != nil {
			respondWithError(w, http.StatusServiceUnavailable, "Filter options unavailable: "+err.Error())
			return
		}
		respondWithSuccess(w, http.StatusOK, options)
	}
}
