package config

import (
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"reparto_tracker/internal/models"
)

// InitDB opens the postgres connection with the configured driver and pool limits.
func InitDB(cfg DBConfig, log gormlogger.Interface) (*gorm.DB, error) {
	pgCfg := postgres.Config{DSN: cfg.DSN()}
	if cfg.Driver == "pq" {
		pgCfg.DriverName = "postgres"
	}

	db, err := gorm.Open(postgres.New(pgCfg), &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Zone{},
		&models.Client{},
		&models.DeliveryPerson{},
		&models.DropOffPoint{},
		&models.Route{},
		&models.Stop{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// The driver task query filters by both columns.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_routes_driver_date ON routes (driver_id, date)").Error; err != nil {
		return fmt.Errorf("create route index: %w", err)
	}
	return nil
}
