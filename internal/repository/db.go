package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/engin-hq/engin/internal/entity"
)

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// Open connects to Postgres, applies pool tuning, and verifies the
// connection within the dial timeout.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	logger.Info("connecting to database")
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// Migrate creates or updates the schema for every entity, including the
// uniqueness constraints the services rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.AuthIdentity{},
		&entity.Session{},
		&entity.Profile{},
		&entity.Startup{},
		&entity.Job{},
		&entity.JobApplication{},
		&entity.Connection{},
		&entity.JobRole{},
		&entity.Collaboration{},
		&entity.Experience{},
	)
}

// Close closes the underlying connection pool gracefully.
func Close(db *gorm.DB, logger *zap.Logger) {
	logger.Info("closing database connections")
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to resolve sql.DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("failed to close database", zap.Error(err))
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the pool to catch DSN issues early.
func HealthCheck(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return sqlDB.PingContext(ctx)
}

// IsNotFound reports whether err is the ORM's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique-constraint violation.
// The sqlite driver used in tests does not translate these, so the raw
// messages are matched as well.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
