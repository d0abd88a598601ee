package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wellingtonshopee/analitics/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck.
func HealthCheckHandler(db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := make(map[string]entities.ServiceStatus)

		pgStatus := "ok"
		pgDetails := "Postgres connected"
		if db == nil {
			pgStatus = "down"
			pgDetails = "Postgres not configured"
		} else if err := db.Ping(); err != nil {
			pgStatus = "down"
			pgDetails = err.Error()
		}
		statuses["postgres"] = entities.ServiceStatus{Status: pgStatus, Details: pgDetails}

		overall := "ok"
		for _, svc := range statuses {
			if svc.Status != "ok" {
				overall = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Status:   overall,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Services: statuses,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
