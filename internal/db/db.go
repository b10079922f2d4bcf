package db

import (
	"fmt"
	"time"

	"github.com/diewo77/inventory-api/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts    = 5
	slowQueryThreshold = 200 * time.Millisecond
)

// Open connects to the configured store. PostgreSQL is retried a few times
// to give the server time to start; SQLite is opened once.
func Open(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	gcfg := GormConfig(log, cfg.Debug)

	if cfg.Driver != config.DriverPostgres {
		db, err := gorm.Open(sqlite.Open(cfg.DSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		if err := limitSQLite(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
		if err == nil {
			break
		}
		log.WithError(err).Warnf("database connection attempt %d/%d failed, retrying", i+1, connectAttempts)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	return db, nil
}

// GormConfig routes gorm's logger through logrus and turns driver errors
// into gorm sentinels such as gorm.ErrDuplicatedKey.
func GormConfig(log *logrus.Logger, debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log, level, slowQueryThreshold),
	}
}

// limitSQLite serialises access to a sqlite database; it has a single writer anyway.
func limitSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

// OpenSQLite opens a sqlite database at dsn with foreign keys enforced.
// Tests use it with in-memory URIs.
func OpenSQLite(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(config.SQLiteDSN(dsn)), GormConfig(log, false))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := limitSQLite(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Ping checks that the store is reachable.
func Ping(db *gorm.DB) error {
	return db.Exec("SELECT 1").Error
}
