package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wellingtonshopee/analitics/internal/api"
	"github.com/wellingtonshopee/analitics/internal/db"
	"github.com/wellingtonshopee/analitics/internal/middleware"
)

// RegisterRoutes builds the chi router over the initialized dependencies.
func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-User"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", api.GetDashboardHandler(deps))
		r.Get("/filter-options", api.GetFilterOptionsHandler(deps))

		r.Route("/reports/{reportID}", func(r chi.Router) {
			r.Get("/", api.GetReportHandler(deps))
			r.Get("/export", api.ExportReportHandler(deps))
		})

		r.Route("/overrides/{trackingNumber}", func(r chi.Router) {
			r.Put("/", api.SetOverrideHandler(deps))
			r.Delete("/", api.ClearOverrideHandler(deps))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitMiddleware)
			r.Post("/imports/{kind}", api.ImportHandler(deps))
		})
	})

	return r
}
