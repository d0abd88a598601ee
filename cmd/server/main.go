package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellingtonshopee/analitics/internal/api"
	"github.com/wellingtonshopee/analitics/internal/config"
	"github.com/wellingtonshopee/analitics/internal/db"
	"github.com/wellingtonshopee/analitics/internal/logging"
	"github.com/wellingtonshopee/analitics/internal/metrics"
	"github.com/wellingtonshopee/analitics/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Analytics backend starting up",
		"environment", cfg.AppEnv,
		"target_hub", cfg.TargetHub,
	)

	dsn := cfg.PostgresDSN()

	if err := db.InitPostgres(dsn); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	if _, err := db.InitPostgresORM(dsn); err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	if err := db.RunMigrations(db.DB.DB); err != nil {
		logging.Error("Failed to run migrations", "error", err.Error())
		log.Fatalf("failed to run migrations: %v", err)
	}

	metricsReg := metrics.NewMetricsRegistry()

	deps, err := api.InitDependencies(cfg, db.DB, db.PgDB, metricsReg)
	if err != nil {
		logging.Error("Failed to initialize dependencies", "error", err.Error())
		log.Fatalf("failed to initialize dependencies: %v", err)
	}

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// /metrics lives outside the chi router so middleware never touches it
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}
