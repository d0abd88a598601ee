package api

import (
	"net/http"
	"time"

	"github.com/wellingtonshopee/analitics/internal/models/dtos"
)

const dateLayout = "2006-01-02"

// parseWindow reads the start/end query parameters. Malformed or missing
// dates yield a nil window; computations that require one respond with an
// awaiting-filter indicator instead of an error page.
func parseWindow(r *http.Request) *dtos.DateWindow {
	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")
	if startRaw == "" || endRaw == "" {
		return nil
	}

	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return nil
	}
	if end.Before(start) {
		return nil
	}

	return &dtos.DateWindow{Start: start, End: end}
}
