package database

import (
	"fmt"

	"github.com/Omthube23/fastapi-elk-project/config"
	"github.com/Omthube23/fastapi-elk-project/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectToDB opens a gorm connection for the configured store driver.
func ConnectToDB(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("store driver %q has no database", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Set logger to Silent to avoid logging every query in production.
		// Use logger.Info for development.
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.StoreDriver == config.DriverSQLite {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the items table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Item{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
