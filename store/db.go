package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sourcing-trainer/models"
)

const (
	maxConnectRetries = 3
	retryInterval     = 5 * time.Second
)

// OpenPostgres connects to dsn, retrying a few times while the database comes up.
func OpenPostgres(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	var err error
	for i := 0; i <= maxConnectRetries; i++ {
		var db *gorm.DB
		db, err = gorm.Open(postgres.Open(dsn), Config())
		if err == nil {
			return db, nil
		}
		logger.Warn("database connection failed, retrying", zap.Int("retry", i), zap.Error(err))
		if i < maxConnectRetries {
			time.Sleep(retryInterval)
		}
	}
	return nil, fmt.Errorf("connect database: %w", err)
}

// Config is the GORM configuration shared by every dialect.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// AutoMigrate creates or updates the tables this service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Player{},
		&models.GameOverride{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
