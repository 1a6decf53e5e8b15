package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reparto_tracker/internal/cache"
	"reparto_tracker/internal/config"
	"reparto_tracker/internal/controllers"
	"reparto_tracker/internal/logger"
	"reparto_tracker/internal/middleware"
	"reparto_tracker/internal/ports"
	"reparto_tracker/internal/repository"
	"reparto_tracker/internal/routes"
	"reparto_tracker/internal/services"
)

// app holds the wired dependencies of one process.
type app struct {
	cfg       *config.Config
	accessLog io.Writer
	db        *gorm.DB
	store     ports.Store
	cache     ports.Cache
	closers   []func() error
}

// bootstrap loads the configuration, sets up logging and opens the datastore and
// cache selected by it.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	out, err := logger.Setup(cfg.Log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, accessLog: out, cache: cache.Noop{}}

	switch cfg.Storage {
	case config.StorageMemory:
		logrus.Warn("Using in-memory storage, data is lost on exit")
		a.store = repository.NewMemoryStore()
	default:
		db, err := config.InitDB(cfg.DB, logger.NewGormLogger(logrus.StandardLogger(), cfg.DB.SlowThreshold))
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.db = db
		a.store = repository.NewGormStore(db)
		a.closers = append(a.closers, sqlDB.Close)
		logrus.WithField("driver", cfg.DB.Driver).Info("Connected to database")
	}

	if cfg.Redis.Addr != "" {
		rc, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.cache = rc
		a.closers = append(a.closers, rc.Close)
		logrus.WithField("addr", cfg.Redis.Addr).Info("Connected to redis")
	}
	return a, nil
}

func (a *app) requireDB() error {
	if a.db == nil {
		return errors.New("this command needs storage=postgres")
	}
	return nil
}

func (a *app) ping(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// handler wires services and controllers over the app's store and cache.
func (a *app) handler() (http.Handler, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}
	lookup := services.NewDropOffLookup(a.store)
	h := routes.Handlers{
		Routes: controllers.NewRouteController(
			services.NewRouteService(a.store, a.store, lookup, a.cache, a.cfg.Redis.ListTTL),
			services.NewReportService(a.store, a.cache, a.cfg.Redis.ReportTTL),
		),
		Driver: controllers.NewDriverController(
			services.NewStopStatusService(a.store, a.cache),
			services.NewDriverTaskService(a.store, a.store, loc),
		),
		Catalog: controllers.NewCatalogController(services.NewCatalogService(a.store, lookup)),
		Health:  controllers.NewHealthController(a.ping),
	}
	auth := middleware.NewAuth(a.cfg.Auth)
	if !a.cfg.Auth.Enabled {
		logrus.Warn("Authentication is disabled")
	}
	engine := routes.SetupRouter(h, auth, a.accessLog)
	return middleware.EnableCORS(a.cfg.Server.AllowedOrigins)(engine), nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logrus.WithError(err).Warn("Failed to close resource")
		}
	}
}
