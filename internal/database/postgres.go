package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB connects to Postgres (a Supabase project database works the
// same way) and migrates the schema. The connection is retried at startup only.
func NewPostgresDB(logger *logrus.Logger, dsn string) (*gorm.DB, error) {
	log := logger.WithFields(logrus.Fields{
		"component": "database",
		"driver":    "postgres",
	})

	var db *gorm.DB
	var err error
	const maxRetries = 5
	retryDelay := 2 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig(log))
		if err == nil {
			break
		}

		log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Database connection failed")

		if attempt < maxRetries {
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	if err != nil {
		log.WithError(err).Error("Failed to connect to database after retries")
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := migrate(db, log); err != nil {
		return nil, err
	}

	log.Info("Database connection established")
	return db, nil
}

// NewSQLiteDB opens an embedded database file. Use "file::memory:?cache=shared"
// for a throwaway in-process database.
func NewSQLiteDB(logger *logrus.Logger, path string) (*gorm.DB, error) {
	log := logger.WithFields(logrus.Fields{
		"component": "database",
		"driver":    "sqlite",
		"path":      path,
	})

	db, err := gorm.Open(sqlite.Open(path), gormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := migrate(db, log); err != nil {
		return nil, err
	}

	log.Info("Database opened")
	return db, nil
}

func gormConfig(log *logrus.Entry) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func migrate(db *gorm.DB, log *logrus.Entry) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.WithError(err).Error("Database migration failed")
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}
