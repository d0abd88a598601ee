package api

import (
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/wellingtonshopee/analitics/internal/common"
	"github.com/wellingtonshopee/analitics/internal/config"
	"github.com/wellingtonshopee/analitics/internal/db/repositories"
	"github.com/wellingtonshopee/analitics/internal/logging"
	"github.com/wellingtonshopee/analitics/internal/metrics"
	"github.com/wellingtonshopee/analitics/internal/services"
)

type Repositories struct {
	Tracking *repositories.TrackingRepository
	Pool     *repositories.PoolRepository
	Sweeper  *repositories.SweeperRepository
	Override *repositories.OverrideRepository
	Import   *repositories.ImportRepository
}

type Services struct {
	Cache         common.CacheInterface
	Recon         *services.ReconciliationService
	Reports       *services.ReportService
	Dashboard     *services.DashboardService
	Export        *services.ExportService
	Overrides     *services.OverrideService
	Imports       *services.ImportService
	FilterOptions *services.FilterOptionsService
	Geocoder      services.Geocoder
}

type Dependencies struct {
	Config   *config.Config
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services. readDB may be nil when
// Postgres is unreachable; the affected stores then degrade per request
// instead of blocking startup.
func InitDependencies(cfg *config.Config, readDB *sqlx.DB, writeDB *gorm.DB, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Tracking: repositories.NewTrackingRepository(readDB),
		Pool:     repositories.NewPoolRepository(readDB),
		Sweeper:  repositories.NewSweeperRepository(readDB),
		Override: repositories.NewOverrideRepository(writeDB),
		Import:   repositories.NewImportRepository(writeDB),
	}

	var cacheSvc common.CacheInterface
	if cfg.UseRedisCache {
		redisCache, err := common.NewRedisCacheService(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			logging.Warn("Redis cache unavailable, falling back to in-memory", "error", err.Error())
			cacheSvc = common.NewCacheService(10*time.Minute, time.Hour)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(10*time.Minute, time.Hour)
	}

	recon := services.NewReconciliationService(
		repos.Sweeper, repos.Pool, repos.Tracking, repos.Override,
		cfg.TargetHub, cfg.DivergenceDedupe, metricsReg)

	filterOptions := services.NewFilterOptionsService(cacheSvc, repos.Tracking, repos.Pool)

	svcs := &Services{
		Cache:         cacheSvc,
		Recon:         recon,
		Reports:       services.NewReportService(recon),
		Dashboard:     services.NewDashboardService(recon, repos.Pool, repos.Sweeper),
		Export:        services.NewExportService(),
		Overrides:     services.NewOverrideService(repos.Override, metricsReg),
		Imports:       services.NewImportService(repos.Import, filterOptions, metricsReg),
		FilterOptions: filterOptions,
		Geocoder:      services.NewViaCEPGeocoder(cfg.ViaCEPBaseURL, cacheSvc, metricsReg),
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
