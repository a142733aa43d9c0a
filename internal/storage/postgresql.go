package storage

import (
	"time"

	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/pkg/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects to PostgreSQL and migrates the schema.
func InitDB(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database handle")
	}
	sqlDB.SetMaxOpenConns(16)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("database ready")
	return db, nil
}

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	return nil
}
